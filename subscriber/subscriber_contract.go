package subscriber

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/subscription-contract/common"
)

// ErrInvalidFarm is thrown when the farm address is not a deployed contract.
const ErrInvalidFarm = "invalid farm address"

const energyThresholdKey = "energyThreshold"

// nolint:deadcode,unused
func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect owner address length")
	}

	storage.Put(ctx, common.OwnerKey, args.owner)

	runtime.Log("subscriber contract initialized")
}

// Update method updates contract source code and manifest. It can be
// invoked only by the contract owner.
func Update(nefFile, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("subscriber contract updated")
}

// ClaimBoostedRewards claims boosted farm rewards of the user from the
// farm contract and returns the claimed payment. The call is a plain
// delegation: a failure of the farm call aborts the whole transaction.
// It can be invoked only by the user.
func ClaimBoostedRewards(farm interop.Hash160, user interop.Hash160) common.TokenPayment {
	common.CheckWitness(user)

	if len(farm) != interop.Hash160Len || management.GetContract(farm) == nil {
		panic(ErrInvalidFarm)
	}

	return contract.Call(farm, "claimBoostedRewards", contract.All, user).(common.TokenPayment)
}

// SetEnergyThreshold sets the minimal energy amount users must hold for
// boosted rewards. It can be invoked only by the contract owner.
func SetEnergyThreshold(amount int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	storage.Put(ctx, energyThresholdKey, amount)
}

// GetEnergyThreshold returns the configured energy threshold.
func GetEnergyThreshold() int {
	return common.GetInt(storage.GetReadOnlyContext(), energyThresholdKey)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}
