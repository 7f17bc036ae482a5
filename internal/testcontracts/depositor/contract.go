package depositor

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Contract account holding a balance in the custody contract. Withdraw asks
// the custody contract for a payout and, from the payment callback, asks for
// the same payout again while the first request is still in flight.

const (
	custodyKey = "custody"
	tokenKey   = "token"
	repeatKey  = "repeat"
)

// nolint:deadcode,unused
func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		return
	}

	args := data.(struct {
		custody interop.Hash160
		token   interop.Hash160
	})

	ctx := storage.GetContext()
	storage.Put(ctx, custodyKey, args.custody)
	storage.Put(ctx, tokenKey, args.token)
}

func Deposit(amount int) {
	ctx := storage.GetReadOnlyContext()
	token := storage.Get(ctx, tokenKey).(interop.Hash160)
	custody := storage.Get(ctx, custodyKey).(interop.Hash160)

	transferred := contract.Call(token, "transfer", contract.All,
		runtime.GetExecutingScriptHash(), custody, amount, nil).(bool)
	if !transferred {
		panic("deposit transfer failed")
	}
}

func Withdraw(amount int) {
	ctx := storage.GetContext()
	storage.Put(ctx, repeatKey, amount)
	requestWithdrawal(ctx, amount)
}

func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	ctx := storage.GetContext()
	repeat := storage.Get(ctx, repeatKey)
	if repeat == nil {
		return
	}

	storage.Delete(ctx, repeatKey)
	requestWithdrawal(ctx, repeat.(int))
}

func requestWithdrawal(ctx storage.Context, amount int) {
	custody := storage.Get(ctx, custodyKey).(interop.Hash160)
	token := storage.Get(ctx, tokenKey).(interop.Hash160)

	contract.Call(custody, "withdrawFunds", contract.All,
		runtime.GetExecutingScriptHash(), []interop.Hash160{token}, []int{amount})
}
