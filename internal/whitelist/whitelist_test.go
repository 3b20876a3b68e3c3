package whitelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDomainLabel(t *testing.T) {
	assert.Equal(t, "acme", DomainLabel("hr@acme.com"))
	assert.Equal(t, "acme", DomainLabel("HR <hr@Acme.com.tr>"))
	assert.Equal(t, "", DomainLabel("not-an-address"))
	assert.Equal(t, "", DomainLabel("two@at@signs"))
}

func TestIsFreeMail(t *testing.T) {
	checker := NewChecker(nil, zap.NewNop())

	assert.True(t, checker.IsFreeMail("someone@gmail.com"))
	assert.True(t, checker.IsFreeMail("someone@gmail.com.tr"))
	assert.False(t, checker.IsFreeMail("hr@acme.com"))
	assert.False(t, checker.IsFreeMail("garbage"))
}

func TestCustomDomains(t *testing.T) {
	checker := NewChecker([]string{"Example"}, zap.NewNop())

	assert.True(t, checker.IsFreeMail("a@example.com"))
	assert.False(t, checker.IsFreeMail("a@gmail.com"))
}
