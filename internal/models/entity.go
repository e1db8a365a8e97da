package models

import "fmt"

// EntityType identifies one of the generated record collections
type EntityType string

const (
	EntityBase              EntityType = "base"
	EntityOperation         EntityType = "operation"
	EntityAircraft          EntityType = "aircraft"
	EntityWorkOrder         EntityType = "work_order"
	EntityMaintenanceRecord EntityType = "maintenance_record"
)

// GenerationOrder is the fixed dependency order in which entity types are created
var GenerationOrder = []EntityType{
	EntityBase,
	EntityOperation,
	EntityAircraft,
	EntityWorkOrder,
	EntityMaintenanceRecord,
}

// ClearOrder lists entity types dependents first so no record outlives what it references
var ClearOrder = []EntityType{
	EntityMaintenanceRecord,
	EntityWorkOrder,
	EntityAircraft,
	EntityOperation,
	EntityBase,
}

// Prerequisites lists, per entity type, the entity types its records are derived from
var Prerequisites = map[EntityType][]EntityType{
	EntityOperation:         {EntityBase},
	EntityAircraft:          {EntityBase, EntityOperation},
	EntityWorkOrder:         {EntityOperation},
	EntityMaintenanceRecord: {EntityWorkOrder},
}

// Dependents returns every entity type derived from e, directly or through
// another dependent, in clear order
func (e EntityType) Dependents() []EntityType {
	var out []EntityType
	for _, candidate := range ClearOrder {
		if candidate != e && candidate.dependsOn(e) {
			out = append(out, candidate)
		}
	}
	return out
}

func (e EntityType) dependsOn(other EntityType) bool {
	for _, req := range Prerequisites[e] {
		if req == other || req.dependsOn(other) {
			return true
		}
	}
	return false
}

// DisplayName returns the human readable singular name used in reports
func (e EntityType) DisplayName() string {
	switch e {
	case EntityBase:
		return "Base"
	case EntityOperation:
		return "Operation"
	case EntityAircraft:
		return "Aircraft"
	case EntityWorkOrder:
		return "Work Order"
	case EntityMaintenanceRecord:
		return "Maintenance Record"
	default:
		return string(e)
	}
}

// Plural returns the display name in plural form, e.g. "Work Orders"
func (e EntityType) Plural() string {
	return e.DisplayName() + "s"
}

// Table returns the storage table name for the entity type
func (e EntityType) Table() string {
	switch e {
	case EntityBase:
		return "bases"
	case EntityOperation:
		return "operations"
	case EntityAircraft:
		return "aircraft"
	case EntityWorkOrder:
		return "work_orders"
	case EntityMaintenanceRecord:
		return "maintenance_records"
	default:
		panic(fmt.Sprintf("unknown entity type: %q", string(e)))
	}
}
