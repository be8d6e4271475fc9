package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnums(t *testing.T) {
	role, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("root")
	assert.Error(t, err)

	for _, c := range []string{"food", "transport", "entertainment", "utilities"} {
		got, err := ParseCategory(c)
		require.NoError(t, err)
		assert.Equal(t, Category(c), got)
	}
	_, err = ParseCategory("Food")
	assert.Error(t, err, "categories are case sensitive")

	typ, err := ParseTransactionType("expense")
	require.NoError(t, err)
	assert.Equal(t, TypeExpense, typ)
	_, err = ParseTransactionType("refund")
	assert.Error(t, err)
}

func TestTransactionJSON(t *testing.T) {
	body := `{"category":"food","type":"expense","amount":12.5,"description":"lunch today","date":"2025-01-07"}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(body), &tx))
	assert.Equal(t, CategoryFood, tx.Category)
	assert.Equal(t, TypeExpense, tx.Type)
	assert.Equal(t, NewDate(2025, time.January, 7), tx.Date)

	out, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"date":"2025-01-07"`)
}

func TestTransactionJSONRejectsUnknownEnum(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"category":"travel","type":"expense"}`), &tx)
	assert.ErrorContains(t, err, "unknown category")

	err = json.Unmarshal([]byte(`{"category":"food","type":"gift"}`), &tx)
	assert.ErrorContains(t, err, "unknown transaction type")
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 3, 4, 15, 30, 0, 0, time.Local)))
	assert.Equal(t, "2025-03-04", d.String())

	require.NoError(t, d.Scan([]byte("2024-12-31")))
	assert.Equal(t, "2024-12-31", d.String())

	assert.Error(t, d.Scan(42))
	_, err := ParseDate("07/01/2025")
	assert.Error(t, err)
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	u := User{ID: 1, Username: "alice", PasswordHash: "$2a$10$secret", Role: RoleUser}
	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret")
	assert.NotContains(t, string(out), "password")
	assert.False(t, u.IsAdmin())
}
