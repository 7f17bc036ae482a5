package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	// NullID marks an address that has no assigned ID in a namespace.
	NullID = 0

	// idByteLen is a fixed width of an ID in composed storage keys.
	idByteLen = 4
)

const (
	// ErrUnknownAddress is thrown when an address has no assigned ID.
	ErrUnknownAddress = "unknown address"
	// ErrIDExists is thrown when an address already has an assigned ID.
	ErrIDExists = "address already has an ID"
)

// IDNamespace is an independent bidirectional address<->ID interning table
// stored in contract storage. IDs grow monotonically from 1 and are never
// reused, even after the address entry is removed. Each instance must use
// prefixes that don't collide with any other storage key of the contract.
type IDNamespace struct {
	// CounterKey stores the last allocated ID.
	CounterKey byte
	// AddressPrefix maps address to its ID.
	AddressPrefix byte
	// IDPrefix maps ID back to the address.
	IDPrefix byte
}

// GetID returns the ID assigned to the address or NullID if there is none.
func (ns IDNamespace) GetID(ctx storage.Context, addr interop.Hash160) int {
	return GetInt(ctx, ns.addressKey(addr))
}

// GetIDOrInsert returns the ID assigned to the address allocating a new
// one if the address hasn't been seen before.
func (ns IDNamespace) GetIDOrInsert(ctx storage.Context, addr interop.Hash160) int {
	id := ns.GetID(ctx, addr)
	if id != NullID {
		return id
	}

	return ns.insert(ctx, addr)
}

// GetIDNonZero returns the ID assigned to the address and panics with
// ErrUnknownAddress if there is none.
func (ns IDNamespace) GetIDNonZero(ctx storage.Context, addr interop.Hash160) int {
	id := ns.GetID(ctx, addr)
	if id == NullID {
		panic(ErrUnknownAddress)
	}

	return id
}

// InsertNew allocates an ID for the address and panics with ErrIDExists
// if the address already has one.
func (ns IDNamespace) InsertNew(ctx storage.Context, addr interop.Hash160) int {
	if ns.GetID(ctx, addr) != NullID {
		panic(ErrIDExists)
	}

	return ns.insert(ctx, addr)
}

// RemoveByAddress drops both mapping directions for the address and returns
// the ID it had, NullID if there was none. The ID is not reused afterwards.
func (ns IDNamespace) RemoveByAddress(ctx storage.Context, addr interop.Hash160) int {
	id := ns.GetID(ctx, addr)
	if id == NullID {
		return NullID
	}

	storage.Delete(ctx, ns.addressKey(addr))
	storage.Delete(ctx, ns.idKey(id))

	return id
}

// AddressByID resolves the address assigned to the ID, nil if the ID was
// never allocated or the entry was removed.
func (ns IDNamespace) AddressByID(ctx storage.Context, id int) interop.Hash160 {
	data := storage.Get(ctx, ns.idKey(id))
	if data == nil {
		return nil
	}

	return data.(interop.Hash160)
}

func (ns IDNamespace) insert(ctx storage.Context, addr interop.Hash160) int {
	id := GetInt(ctx, []byte{ns.CounterKey}) + 1
	storage.Put(ctx, []byte{ns.CounterKey}, id)
	storage.Put(ctx, ns.addressKey(addr), id)
	storage.Put(ctx, ns.idKey(id), addr)

	return id
}

func (ns IDNamespace) addressKey(addr interop.Hash160) []byte {
	return append([]byte{ns.AddressPrefix}, addr...)
}

func (ns IDNamespace) idKey(id int) []byte {
	return append([]byte{ns.IDPrefix}, IDToBytes(id)...)
}

// IDToBytes encodes an ID as a fixed-width byte string, so that IDs can be
// concatenated in storage keys without ambiguity.
func IDToBytes(id int) []byte {
	b := convert.ToBytes(id)
	for len(b) < idByteLen {
		b = append(b, 0)
	}

	return b
}

// IDFromBytes decodes an ID produced by IDToBytes.
func IDFromBytes(b []byte) int {
	return convert.ToInteger(b)
}
