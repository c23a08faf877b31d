package tenant

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopedContext(t *testing.T) {
	companyID := uuid.New()
	tc := Scoped(companyID)

	assert.True(t, tc.IsScoped())
	got, ok := tc.CompanyID()
	require.True(t, ok)
	assert.Equal(t, companyID, got)
}

func TestUnscopedContext(t *testing.T) {
	tc := Unscoped()

	assert.False(t, tc.IsScoped())
	_, ok := tc.CompanyID()
	assert.False(t, ok)
}

func TestContextPlumbing(t *testing.T) {
	companyID := uuid.New()

	t.Run("round trip through context.Context", func(t *testing.T) {
		ctx := Into(context.Background(), Scoped(companyID))

		tc, ok := From(ctx)
		require.True(t, ok)
		got, ok := tc.CompanyID()
		require.True(t, ok)
		assert.Equal(t, companyID, got)
	})

	t.Run("missing context is distinguishable", func(t *testing.T) {
		_, ok := From(context.Background())
		assert.False(t, ok)
	})

	t.Run("explicit unscoped context is present but unconfined", func(t *testing.T) {
		ctx := Into(context.Background(), Unscoped())

		tc, ok := From(ctx)
		require.True(t, ok)
		assert.False(t, tc.IsScoped())

		_, scoped := CompanyIDFrom(ctx)
		assert.False(t, scoped)
	})

	t.Run("CompanyIDFrom shortcut", func(t *testing.T) {
		ctx := Into(context.Background(), Scoped(companyID))
		got, ok := CompanyIDFrom(ctx)
		require.True(t, ok)
		assert.Equal(t, companyID, got)
	})
}

func TestCompanyLifecycle(t *testing.T) {
	company, err := NewCompany("SANDUQ-001", "Coast Collections Ltd")
	require.NoError(t, err)
	assert.True(t, company.IsActive())

	require.NoError(t, company.Deactivate())
	assert.False(t, company.IsActive())
	assert.NotNil(t, company.DeactivatedAt)
	assert.Error(t, company.Deactivate())

	require.NoError(t, company.Reactivate())
	assert.True(t, company.IsActive())
	assert.Nil(t, company.DeactivatedAt)
}

func TestNewCompany_Validation(t *testing.T) {
	_, err := NewCompany("", "Name")
	assert.Error(t, err)

	_, err = NewCompany("CODE", "")
	assert.Error(t, err)
}
