package models

import (
	"time"

	"github.com/google/uuid"
)

// Every factory-scoped record lives under "<entity>:<factory_id>:<id>",
// so a prefix scan on "<entity>:<factory_id>:" returns all records of
// one type for one tenant. Users, credentials and factories are global.

func UserKey(id string) string          { return "users:" + id }
func CredentialKey(email string) string { return "credentials:" + email }
func FactoryKey(id string) string       { return "factories:" + id }

func ProductKey(factoryID, id string) string { return ProductPrefix(factoryID) + id }
func ProductPrefix(factoryID string) string { return "products:" + factoryID + ":" }

func RawMaterialKey(factoryID, id string) string { return RawMaterialPrefix(factoryID) + id }
func RawMaterialPrefix(factoryID string) string { return "raw_materials:" + factoryID + ":" }

func BOMKey(factoryID, id string) string { return BOMPrefix(factoryID) + id }
func BOMPrefix(factoryID string) string { return "bom:" + factoryID + ":" }

func TransactionKey(factoryID, id string) string { return TransactionPrefix(factoryID) + id }
func TransactionPrefix(factoryID string) string {
	return "inventory_transactions:" + factoryID + ":"
}

func OrderKey(factoryID, id string) string { return OrderPrefix(factoryID) + id }
func OrderPrefix(factoryID string) string { return "production_orders:" + factoryID + ":" }

func UsageKey(factoryID, id string) string { return UsagePrefix(factoryID) + id }
func UsagePrefix(factoryID string) string {
	return "production_material_usage:" + factoryID + ":"
}

func DowntimeKey(factoryID, id string) string { return DowntimePrefix(factoryID) + id }
func DowntimePrefix(factoryID string) string { return "downtime_events:" + factoryID + ":" }

func AlertKey(factoryID, id string) string { return AlertPrefix(factoryID) + id }
func AlertPrefix(factoryID string) string { return "alerts:" + factoryID + ":" }

func NewID() string { return uuid.NewString() }

// Now returns the current UTC time as the RFC3339 string format all
// records are stamped with.
func Now() string { return time.Now().UTC().Format(time.RFC3339) }
