package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/subscription-contract/common"
	"github.com/nspcc-dev/subscription-contract/subscriber"
	"github.com/stretchr/testify/require"
)

func TestSubscriber_ClaimBoostedRewards(t *testing.T) {
	e := newExecutor(t)
	h := deploySubscriberContract(t, e)
	c := e.CommitteeInvoker(h)

	farm := deployFarmStub(t, e)

	user := e.NewAccount(t)
	userHash := user.ScriptHash()
	cUser := c.WithSigners(user)

	// rewards can be claimed only by the user themselves
	c.InvokeFail(t, common.ErrWitnessFailed, "claimBoostedRewards", farm, userHash)

	cUser.InvokeFail(t, subscriber.ErrInvalidFarm, "claimBoostedRewards",
		userHash, userHash)

	// hash-valued fields come back as buffers, compare raw bytes
	cUser.InvokeAndCheck(t, func(t testing.TB, stack []stackitem.Item) {
		require.Len(t, stack, 1)

		payment, ok := stack[0].Value().([]stackitem.Item)
		require.True(t, ok)
		require.Len(t, payment, 2)

		asset, err := payment[0].TryBytes()
		require.NoError(t, err)
		require.Equal(t, farm.BytesBE(), asset)

		amount, err := payment[1].TryInteger()
		require.NoError(t, err)
		require.EqualValues(t, 42, amount.Int64())
	}, "claimBoostedRewards", farm, userHash)

	s, err := e.CommitteeInvoker(farm).TestInvoke(t, "lastClaimer")
	require.NoError(t, err)
	claimer, err := s.Pop().Item().TryBytes()
	require.NoError(t, err)
	require.Equal(t, userHash.BytesBE(), claimer)
}

func TestSubscriber_EnergyThreshold(t *testing.T) {
	e := newExecutor(t)
	h := deploySubscriberContract(t, e)
	c := e.CommitteeInvoker(h)

	c.Invoke(t, int64(0), "getEnergyThreshold")

	acc := e.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"setEnergyThreshold", int64(123))

	c.Invoke(t, stackitem.Null{}, "setEnergyThreshold", int64(123))
	c.Invoke(t, int64(123), "getEnergyThreshold")
}

func TestSubscriber_Version(t *testing.T) {
	e := newExecutor(t)
	h := deploySubscriberContract(t, e)

	e.CommitteeInvoker(h).Invoke(t, int64(common.Version), "version")
}
