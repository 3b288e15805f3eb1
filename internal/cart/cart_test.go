package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *FileStore {
	return &FileStore{Path: filepath.Join(t.TempDir(), "cart.json")}
}

var laptop = Product{ID: 1, Name: "laptop", Description: "a laptop"}
var bike = Product{ID: 2, Name: "bike", Description: "a bike"}

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	m := New(newFileStore(t))
	m.SetCustomer("alice", "alice@example.com")

	require.NoError(t, m.Add(laptop))
	require.NoError(t, m.Add(laptop))

	items := m.Items()
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Quantity)
	require.Equal(t, "Customer: alice, Email: alice@example.com, Product: laptop", items[0].OrderDescription)
	require.False(t, items[0].AddedAt.IsZero())
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	m := New(newFileStore(t))

	require.NoError(t, m.Add(laptop))
	require.NoError(t, m.Add(bike))
	require.NoError(t, m.Add(laptop))

	items := m.Items()
	require.Len(t, items, 2)
	require.Equal(t, laptop.ID, items[0].ProductID)
	require.Equal(t, bike.ID, items[1].ProductID)
}

func TestDecrementFloorsAtOne(t *testing.T) {
	m := New(newFileStore(t))

	require.NoError(t, m.Add(laptop))
	require.NoError(t, m.Decrement(laptop.ID))

	items := m.Items()
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].Quantity)
}

func TestIncrementDecrement(t *testing.T) {
	m := New(newFileStore(t))

	require.NoError(t, m.Add(laptop))
	require.NoError(t, m.Increment(laptop.ID))
	require.NoError(t, m.Increment(laptop.ID))
	require.NoError(t, m.Decrement(laptop.ID))

	require.Equal(t, 2, m.Items()[0].Quantity)

	// Unknown product ids are no-ops.
	require.NoError(t, m.Increment(99))
	require.NoError(t, m.Decrement(99))
	require.Len(t, m.Items(), 1)
}

func TestRemoveDropsLineItem(t *testing.T) {
	m := New(newFileStore(t))

	require.NoError(t, m.Add(laptop))
	require.NoError(t, m.Add(laptop))
	require.NoError(t, m.Add(bike))
	require.NoError(t, m.Remove(laptop.ID))

	items := m.Items()
	require.Len(t, items, 1)
	require.Equal(t, bike.ID, items[0].ProductID)
}

func TestSnapshotRestoredAcrossManagers(t *testing.T) {
	store := newFileStore(t)

	m := New(store)
	m.SetCustomer("bob", "bob@example.com")
	require.NoError(t, m.Add(laptop))
	require.NoError(t, m.Add(laptop))
	require.NoError(t, m.Add(bike))

	restored := New(store)
	items := restored.Items()
	require.Len(t, items, 2)
	require.Equal(t, 2, items[0].Quantity)
	require.Equal(t, "Customer: bob, Email: bob@example.com, Product: laptop", items[0].OrderDescription)
}

func TestCorruptSnapshotYieldsEmptyCart(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, os.WriteFile(store.Path, []byte("not json"), 0o644))

	m := New(store)
	require.Equal(t, 0, m.Len())
}

func TestClearRemovesSnapshot(t *testing.T) {
	store := newFileStore(t)

	m := New(store)
	require.NoError(t, m.Add(laptop))
	_, err := os.Stat(store.Path)
	require.NoError(t, err)

	require.NoError(t, m.Clear())
	require.Equal(t, 0, m.Len())
	_, err = os.Stat(store.Path)
	require.True(t, os.IsNotExist(err))

	// Clearing an already-empty store is fine.
	require.NoError(t, m.Clear())
}
