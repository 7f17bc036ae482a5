package farmstub

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Farm stub answering boosted reward claims with a fixed payment.

type Payment struct {
	Asset  interop.Hash160
	Amount int
}

const rewardAmount = 42

const lastClaimerKey = "lastClaimer"

func ClaimBoostedRewards(user interop.Hash160) Payment {
	storage.Put(storage.GetContext(), lastClaimerKey, user)

	return Payment{
		Asset:  runtime.GetExecutingScriptHash(),
		Amount: rewardAmount,
	}
}

func LastClaimer() interop.Hash160 {
	data := storage.Get(storage.GetReadOnlyContext(), lastClaimerKey)
	if data == nil {
		return nil
	}

	return data.(interop.Hash160)
}
