package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// TokenPayment is a single (asset, amount) entry of a user balance list.
// Asset is a script hash of a NEP-17 token contract.
type TokenPayment struct {
	Asset  interop.Hash160
	Amount int
}

// AddPayment merges the payment into the list keeping each asset unique:
// an existing entry for the same asset is increased in place, otherwise
// the payment is appended.
func AddPayment(list []TokenPayment, p TokenPayment) []TokenPayment {
	for i := range list {
		if BytesEqual(list[i].Asset, p.Asset) {
			list[i].Amount += p.Amount
			return list
		}
	}

	return append(list, p)
}

// GetPayments returns a payment list stored by the key, empty list if
// nothing is stored.
func GetPayments(ctx storage.Context, key interface{}) []TokenPayment {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).([]TokenPayment)
	}

	return []TokenPayment{}
}
