// Package types defines the vendor platform record shapes consumed by the
// report generators. This package contains NO business logic - only type
// definitions and trivial accessors.
package types

// Asset is a customer subscription/purchase record
type Asset struct {
	ID            string        `json:"id"`
	Status        string        `json:"status"`
	ExternalID    string        `json:"external_id"`
	Product       Product       `json:"product"`
	Marketplace   Marketplace   `json:"marketplace"`
	Contract      Contract      `json:"contract"`
	Connection    Connection    `json:"connection"`
	Tiers         Tiers         `json:"tiers"`
	Items         []Item        `json:"items"`
	Params        []Param       `json:"params"`
	Events        Events        `json:"events"`
	Configuration Configuration `json:"configuration"`
	Billing       Billing       `json:"billing"`
}

// Product identifies the product an asset belongs to
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Marketplace identifies the marketplace an asset is sold on
type Marketplace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Contract identifies the contract behind an asset
type Contract struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Connection describes how the asset is provisioned
type Connection struct {
	Type     string   `json:"type"`
	Provider Provider `json:"provider"`
}

// Provider identifies the provider account of a connection
type Provider struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Tiers holds the customer and reseller accounts of an asset
type Tiers struct {
	Customer Tier `json:"customer"`
	Tier1    Tier `json:"tier1"`
}

// Tier is a customer or reseller account
type Tier struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
}

// Item is a single asset line item. Quantities arrive as strings on the
// wire and are parsed only at aggregation time.
type Item struct {
	ID          string `json:"id"`
	GlobalID    string `json:"global_id"`
	DisplayName string `json:"display_name"`
	MPN         string `json:"mpn"`
	ItemType    string `json:"item_type"`
	Period      string `json:"period"`
	Quantity    string `json:"quantity"`
	OldQuantity string `json:"old_quantity"`
}

// Param is a subscription parameter, addressable by id or by name
type Param struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Value           string           `json:"value"`
	StructuredValue *StructuredValue `json:"structured_value,omitempty"`
}

// StructuredValue holds structured discount metadata on a parameter
type StructuredValue struct {
	Discount Discount `json:"discount"`
}

// Discount is the discount block of a structured parameter value
type Discount struct {
	Items []DiscountItem `json:"items"`
}

// DiscountItem is a single rating entry of a discount block
type DiscountItem struct {
	RatingAttribute string `json:"rating_attribute"`
}

// Events holds the lifecycle events of an asset
type Events struct {
	Created EventAt `json:"created"`
}

// EventAt is a single event timestamp
type EventAt struct {
	At string `json:"at"`
}

// Configuration holds product configuration parameters
type Configuration struct {
	Params []Param `json:"params"`
}

// Billing holds billing schedule data for an asset
type Billing struct {
	NextDate string `json:"next_date"`
}
