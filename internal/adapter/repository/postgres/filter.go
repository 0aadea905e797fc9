package postgres

import (
	"github.com/Dexuser/property-service/internal/property/domain"
	"gorm.io/gorm"
)

// condition is a single WHERE predicate with its bound arguments.
type condition struct {
	expr string
	args []interface{}
}

// filterConditions assembles the conjunctive predicate list for a search
// filter. Absent fields contribute nothing; the availability predicate is
// applied by the caller, not here. Kept as a pure function so predicate
// composition can be unit-tested without a database.
func filterConditions(filter domain.Filter) []condition {
	var conds []condition
	if filter.AgentID != nil {
		conds = append(conds, condition{"properties.agent_id = ?", []interface{}{*filter.AgentID}})
	}
	if filter.PropertyTypeID != nil {
		conds = append(conds, condition{"properties.property_type_id = ?", []interface{}{*filter.PropertyTypeID}})
	}
	if filter.MinPrice != nil {
		conds = append(conds, condition{"properties.price >= ?", []interface{}{*filter.MinPrice}})
	}
	if filter.MaxPrice != nil {
		conds = append(conds, condition{"properties.price <= ?", []interface{}{*filter.MaxPrice}})
	}
	if filter.MinRooms != nil {
		conds = append(conds, condition{"properties.rooms >= ?", []interface{}{*filter.MinRooms}})
	}
	if filter.MinBathrooms != nil {
		conds = append(conds, condition{"properties.bathrooms >= ?", []interface{}{*filter.MinBathrooms}})
	}
	if filter.OnlyFavorites {
		// An existence check, not a join: joining favorite rows would
		// multiply result rows per marker.
		conds = append(conds, condition{
			"EXISTS (SELECT 1 FROM favorite_properties f WHERE f.property_id = properties.id AND f.user_id = ?)",
			[]interface{}{filter.ClientID},
		})
	}
	return conds
}

// applyConditions chains every predicate onto the query.
func applyConditions(query *gorm.DB, conds []condition) *gorm.DB {
	for _, c := range conds {
		query = query.Where(c.expr, c.args...)
	}
	return query
}
