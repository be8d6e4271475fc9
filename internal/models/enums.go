package models

import (
	"encoding/json"
	"fmt"
)

// Role is the authorization level of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Category classifies a transaction
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"
)

// TransactionType tells income and expense apart
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// ParseRole converts a raw string into a Role
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleUser:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q (want admin or user)", s)
}

// ParseCategory converts a raw string into a Category
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryFood, CategoryTransport, CategoryEntertainment, CategoryUtilities:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q (want food, transport, entertainment or utilities)", s)
}

// ParseTransactionType converts a raw string into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TypeIncome, TypeExpense:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type %q (want income or expense)", s)
}

func (r *Role) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, r, ParseRole)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, c, ParseCategory)
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, t, ParseTransactionType)
}

func unmarshalEnum[T ~string](data []byte, dst *T, parse func(string) (T, error)) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := parse(raw)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
