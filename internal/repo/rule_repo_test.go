package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/model/rule"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

const (
	seededCarWash = "11111111-1111-1111-1111-111111111111"
	seededDefault = "aaaaaaaa-0001-0001-0001-000000000000"
	fixtureParkID = "44444444-4444-4444-4444-444444444444"
)

func TestRuleRepository_seeded(t *testing.T) {
	repo, ctx, cancel, _ := setupRepo(t, NewRuleRepository)
	defer cancel()

	r, err := repo.RuleForService(ctx, seededCarWash, rule.TypeEarning)
	require.NoError(t, err)
	assert.Equal(t, int32(10), r.PointsPerBaseAmount)
	assert.Equal(t, "100.00", r.BaseAmount.String())
	require.NotNil(t, r.ServiceName)
	assert.Equal(t, "Car Wash", *r.ServiceName)

	services, err := repo.ListServices(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(services), 3)
}

func TestRuleRepository_GetService(t *testing.T) {
	repo, ctx, cancel, _ := setupRepo(t, NewRuleRepository)
	defer cancel()

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "seeded", id: seededCarWash},
		{name: "unknown", id: "99999999-9999-9999-9999-999999999999", wantErr: serviceerrs.ErrNotFound},
		{name: "not a uuid", id: "car-wash", wantErr: serviceerrs.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := repo.GetService(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, s.ID)
		})
	}
}

func TestRuleRepository_CreateService(t *testing.T) {
	repo, ctx, cancel, _ := setupRepo(t, NewRuleRepository)
	defer cancel()

	created, err := repo.CreateService(ctx, rule.Service{Name: "Car Detailing", Description: "Full detailing"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetService(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Car Detailing", got.Name)

	_, err = repo.CreateService(ctx, rule.Service{Name: "Car Detailing"})
	require.ErrorIs(t, err, serviceerrs.ErrAlreadyExists)
}

func TestRuleRepository_rule_lifecycle(t *testing.T) {
	repo, ctx, cancel, pool := setupRepo(t, NewRuleRepository)
	defer cancel()
	require.NoError(t, loadFixtureFile(pool, "./fixtures/rules_service.sql"))

	serviceID := fixtureParkID
	created, err := repo.CreateRule(ctx, rule.Rule{
		ServiceID:           &serviceID,
		RuleType:            rule.TypeEarning,
		BaseAmount:          model.NewAmount(50, 0),
		PointsPerBaseAmount: 3,
	})
	require.NoError(t, err)
	require.NotNil(t, created.ServiceName)
	assert.Equal(t, "Parking", *created.ServiceName)

	found, err := repo.RuleForService(ctx, serviceID, rule.TypeEarning)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	created.PointsPerBaseAmount = 4
	require.NoError(t, repo.UpdateRule(ctx, created))
	updated, err := repo.GetRule(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(4), updated.PointsPerBaseAmount)

	require.NoError(t, repo.DeleteRule(ctx, created.ID))
	_, err = repo.GetRule(ctx, created.ID)
	require.ErrorIs(t, err, serviceerrs.ErrNotFound)
	require.ErrorIs(t, repo.DeleteRule(ctx, created.ID), serviceerrs.ErrNotFound)

	created.ID = "bbbbbbbb-0000-0000-0000-000000000000"
	require.ErrorIs(t, repo.UpdateRule(ctx, created), serviceerrs.ErrNotFound)
}

func TestRuleRepository_default_replaced(t *testing.T) {
	repo, ctx, cancel, _ := setupRepo(t, NewRuleRepository)
	defer cancel()

	before, err := repo.DefaultRule(ctx, rule.TypeEarning)
	require.NoError(t, err)

	created, err := repo.CreateRule(ctx, rule.Rule{
		RuleType:            rule.TypeEarning,
		BaseAmount:          model.NewAmount(2, 0),
		PointsPerBaseAmount: 1,
		IsDefault:           true,
	})
	require.NoError(t, err)

	after, err := repo.DefaultRule(ctx, rule.TypeEarning)
	require.NoError(t, err)
	assert.Equal(t, created.ID, after.ID)
	assert.NotEqual(t, before.ID, after.ID)

	old, err := repo.GetRule(ctx, before.ID)
	require.NoError(t, err)
	assert.False(t, old.IsDefault)

	// restore the seeded default for other tests
	restored, err := repo.GetRule(ctx, seededDefault)
	require.NoError(t, err)
	restored.IsDefault = true
	require.NoError(t, repo.UpdateRule(ctx, restored))
	require.NoError(t, repo.DeleteRule(ctx, created.ID))
}
