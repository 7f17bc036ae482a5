package nep17token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Minimal NEP-17 fungible token used in tests as a deposit asset. Mint is
// left open on purpose, the token is never deployed outside of tests.

const (
	totalSupplyKey = "totalSupply"

	balancePrefix = 'b'
)

func Symbol() string {
	return "TEST"
}

func Decimals() int {
	return 8
}

func TotalSupply() int {
	return getInt(storage.GetReadOnlyContext(), totalSupplyKey)
}

func BalanceOf(account interop.Hash160) int {
	return getInt(storage.GetReadOnlyContext(), balanceKey(account))
}

func Transfer(from, to interop.Hash160, amount int, data interface{}) bool {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len || amount < 0 {
		panic("invalid transfer arguments")
	}

	if !runtime.CheckWitness(from) && string(runtime.GetCallingScriptHash()) != string(from) {
		return false
	}

	ctx := storage.GetContext()
	fromBalance := getInt(ctx, balanceKey(from))
	if fromBalance < amount {
		return false
	}

	storage.Put(ctx, balanceKey(from), fromBalance-amount)
	storage.Put(ctx, balanceKey(to), getInt(ctx, balanceKey(to))+amount)

	runtime.Notify("Transfer", from, to, amount)

	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}

	return true
}

func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	storage.Put(ctx, balanceKey(to), getInt(ctx, balanceKey(to))+amount)
	storage.Put(ctx, totalSupplyKey, getInt(ctx, totalSupplyKey)+amount)

	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
}

func getInt(ctx storage.Context, key interface{}) int {
	data := storage.Get(ctx, key)
	if data != nil {
		return data.(int)
	}

	return 0
}

func balanceKey(account interop.Hash160) []byte {
	return append([]byte{balancePrefix}, account...)
}
