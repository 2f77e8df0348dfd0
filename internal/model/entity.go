package model

import "time"

// Entity is a locally tracked reference to an external business object
// (client, shop, ...). It exists only to group documents; the external
// system owns the real record.
type Entity struct {
	ID               string    `json:"id"`
	EntityType       string    `json:"entity_type"`
	ExternalEntityID int64     `json:"external_entity_id"`
	EntityName       string    `json:"entity_name"`
	UpdatedAt        time.Time `json:"updated_at"`
}
