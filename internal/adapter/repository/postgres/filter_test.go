package postgres

import (
	"testing"

	"github.com/Dexuser/property-service/internal/property/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterConditions_EmptyFilter(t *testing.T) {
	assert.Empty(t, filterConditions(domain.Filter{}))
}

func TestFilterConditions_AllPredicates(t *testing.T) {
	agent := "agent-1"
	typeID := uint(2)
	minPrice := 100.0
	maxPrice := 500.0
	minRooms := 2
	minBathrooms := 1

	conds := filterConditions(domain.Filter{
		AgentID:        &agent,
		PropertyTypeID: &typeID,
		MinPrice:       &minPrice,
		MaxPrice:       &maxPrice,
		MinRooms:       &minRooms,
		MinBathrooms:   &minBathrooms,
		ClientID:       "client-1",
		OnlyFavorites:  true,
	})
	require.Len(t, conds, 7)

	exprs := make([]string, 0, len(conds))
	for _, c := range conds {
		exprs = append(exprs, c.expr)
	}
	assert.Equal(t, []string{
		"properties.agent_id = ?",
		"properties.property_type_id = ?",
		"properties.price >= ?",
		"properties.price <= ?",
		"properties.rooms >= ?",
		"properties.bathrooms >= ?",
		"EXISTS (SELECT 1 FROM favorite_properties f WHERE f.property_id = properties.id AND f.user_id = ?)",
	}, exprs)

	assert.Equal(t, []interface{}{agent}, conds[0].args)
	assert.Equal(t, []interface{}{typeID}, conds[1].args)
	assert.Equal(t, []interface{}{minPrice}, conds[2].args)
	assert.Equal(t, []interface{}{"client-1"}, conds[6].args)
}

func TestFilterConditions_PartialFilter(t *testing.T) {
	minPrice := 250.0

	conds := filterConditions(domain.Filter{MinPrice: &minPrice})
	require.Len(t, conds, 1)
	assert.Equal(t, "properties.price >= ?", conds[0].expr)
	assert.Equal(t, []interface{}{minPrice}, conds[0].args)
}

func TestFilterConditions_ClientIDAloneAddsNothing(t *testing.T) {
	// A client identity is favorite-marking context, not a match predicate.
	conds := filterConditions(domain.Filter{ClientID: "client-1"})
	assert.Empty(t, conds)
}
