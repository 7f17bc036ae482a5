package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/subscription-contract/common"
	"github.com/nspcc-dev/subscription-contract/subscription"
	"github.com/stretchr/testify/require"
)

func TestSubscription_AddAcceptedFeesTokens(t *testing.T) {
	e, c := newSubscriptionInvoker(t)

	token := deployTestToken(t, e)
	gas := gasHash(t, e)

	acc := e.NewAccount(t)
	cAcc := c.WithSigners(acc)
	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "addAcceptedFeesTokens",
		[]interface{}{token})

	c.InvokeFail(t, subscription.ErrInvalidToken, "addAcceptedFeesTokens",
		[]interface{}{[]byte{1, 2, 3}})

	c.Invoke(t, stackitem.Null{}, "addAcceptedFeesTokens",
		[]interface{}{gas, token})

	accepted := toUint160Set(t, c, "getAcceptedFeesTokens")
	require.ElementsMatch(t, [][]byte{gas.BytesBE(), token.BytesBE()}, accepted)

	// re-adding a listed token must not grow the set
	c.Invoke(t, stackitem.Null{}, "addAcceptedFeesTokens",
		[]interface{}{token})

	accepted = toUint160Set(t, c, "getAcceptedFeesTokens")
	require.Len(t, accepted, 2)
}

func TestSubscription_Deposit(t *testing.T) {
	e, c := newSubscriptionInvoker(t)

	token := deployTestToken(t, e)
	gas := gasHash(t, e)

	user := e.NewAccount(t)
	userHash := user.ScriptHash()

	// nothing is accepted yet, deposits must be rolled back whole
	e.NewInvoker(gas, user).InvokeFail(t, subscription.ErrInvalidPaymentToken,
		"transfer", userHash, c.Hash, int64(1_0000_0000), nil)

	c.Invoke(t, stackitem.Null{}, "addAcceptedFeesTokens",
		[]interface{}{gas, token})

	e.NewInvoker(gas, user).InvokeFail(t, subscription.ErrNoPayment,
		"transfer", userHash, c.Hash, int64(0), nil)

	transferToken(t, e, gas, user, c.Hash, 3_0000_0000)
	c.Invoke(t, int64(3_0000_0000), "getUserDepositedGas", userHash)
	c.Invoke(t, int64(1), "getUserID", userHash)

	mintToken(t, e, token, userHash, 1000)
	transferToken(t, e, token, user, c.Hash, 100)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray(token.BytesBE()),
			stackitem.Make(100),
		}),
	}), "getUserDepositedFees", userHash)

	// a repeated deposit merges into the existing entry
	transferToken(t, e, token, user, c.Hash, 50)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray(token.BytesBE()),
			stackitem.Make(150),
		}),
	}), "getUserDepositedFees", userHash)

	// the id is stable across deposits
	c.Invoke(t, int64(1), "getUserID", userHash)
}

func withdrawalResult(gasAmount int64, payments ...stackitem.Item) stackitem.Item {
	if payments == nil {
		payments = []stackitem.Item{}
	}
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(gasAmount),
		stackitem.NewArray(payments),
	})
}

func tokenPayment(asset util.Uint160, amount int64) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(asset.BytesBE()),
		stackitem.Make(amount),
	})
}

func TestSubscription_WithdrawFunds(t *testing.T) {
	e, c := newSubscriptionInvoker(t)

	token := deployTestToken(t, e)
	gas := gasHash(t, e)
	c.Invoke(t, stackitem.Null{}, "addAcceptedFeesTokens",
		[]interface{}{gas, token})

	user := e.NewAccount(t)
	userHash := user.ScriptHash()
	cUser := c.WithSigners(user)

	// the user never deposited, there is no id to withdraw for
	cUser.InvokeFail(t, common.ErrUnknownAddress, "withdrawFunds", userHash,
		[]interface{}{gas}, []interface{}{int64(1)})

	mintToken(t, e, token, userHash, 1000)
	transferToken(t, e, token, user, c.Hash, 100)
	transferToken(t, e, gas, user, c.Hash, 50)

	// only the user itself can withdraw
	c.InvokeFail(t, common.ErrWitnessFailed, "withdrawFunds", userHash,
		[]interface{}{gas}, []interface{}{int64(10)})

	cUser.InvokeFail(t, subscription.ErrLengthMismatch, "withdrawFunds", userHash,
		[]interface{}{gas, token}, []interface{}{int64(10)})

	// non-positive amounts abort the whole batch
	cUser.InvokeFail(t, subscription.ErrInvalidAmount, "withdrawFunds", userHash,
		[]interface{}{token}, []interface{}{int64(-10)})
	cUser.InvokeFail(t, subscription.ErrInvalidAmount, "withdrawFunds", userHash,
		[]interface{}{gas}, []interface{}{int64(0)})

	// (token, 100) matches exactly and removes the entry, (GAS, 60)
	// exceeds the held 50 and is silently skipped
	cUser.Invoke(t, withdrawalResult(0, tokenPayment(token, 100)),
		"withdrawFunds", userHash,
		[]interface{}{token, gas}, []interface{}{int64(100), int64(60)})

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{}), "getUserDepositedFees", userHash)
	c.Invoke(t, int64(50), "getUserDepositedGas", userHash)
	e.CommitteeInvoker(token).Invoke(t, int64(1000), "balanceOf", userHash)

	// a partial withdrawal decrements the entry in place
	transferToken(t, e, token, user, c.Hash, 100)
	cUser.Invoke(t, withdrawalResult(0, tokenPayment(token, 40)),
		"withdrawFunds", userHash,
		[]interface{}{token}, []interface{}{int64(40)})
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		tokenPayment(token, 60),
	}), "getUserDepositedFees", userHash)

	// a skipped token request leaves the entry untouched
	cUser.Invoke(t, withdrawalResult(0),
		"withdrawFunds", userHash,
		[]interface{}{token}, []interface{}{int64(70)})
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		tokenPayment(token, 60),
	}), "getUserDepositedFees", userHash)

	// the whole GAS balance can be taken back
	cUser.Invoke(t, withdrawalResult(50),
		"withdrawFunds", userHash,
		[]interface{}{gas}, []interface{}{int64(50)})
	c.Invoke(t, int64(0), "getUserDepositedGas", userHash)
}

func TestSubscription_WithdrawTwoAssets(t *testing.T) {
	e, c := newSubscriptionInvoker(t)

	// contract deployment costs more than the default account funding
	deployer := e.NewAccount(t, 300_0000_0000)
	tokenA := deployTestToken(t, e)
	tokenB := deployTestTokenBy(t, e, deployer)
	c.Invoke(t, stackitem.Null{}, "addAcceptedFeesTokens",
		[]interface{}{tokenA, tokenB})

	user := e.NewAccount(t)
	userHash := user.ScriptHash()
	cUser := c.WithSigners(user)

	mintToken(t, e, tokenA, userHash, 100)
	mintToken(t, e, tokenB, userHash, 50)
	transferToken(t, e, tokenA, user, c.Hash, 100)
	transferToken(t, e, tokenB, user, c.Hash, 50)

	// (A, 100) fully consumes its entry, (B, 60) is skipped and B's
	// entry survives the batch
	cUser.Invoke(t, withdrawalResult(0, tokenPayment(tokenA, 100)),
		"withdrawFunds", userHash,
		[]interface{}{tokenA, tokenB}, []interface{}{int64(100), int64(60)})

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		tokenPayment(tokenB, 50),
	}), "getUserDepositedFees", userHash)
	e.CommitteeInvoker(tokenA).Invoke(t, int64(100), "balanceOf", userHash)
	e.CommitteeInvoker(tokenB).Invoke(t, int64(0), "balanceOf", userHash)
}

func TestSubscription_WithdrawReentry(t *testing.T) {
	e, c := newSubscriptionInvoker(t)

	token := deployTestToken(t, e)
	c.Invoke(t, stackitem.Null{}, "addAcceptedFeesTokens",
		[]interface{}{token})

	victim := e.NewAccount(t)
	victimHash := victim.ScriptHash()
	mintToken(t, e, token, victimHash, 50)
	transferToken(t, e, token, victim, c.Hash, 50)

	depositor := deployDepositorStub(t, e, c.Hash, token)
	mintToken(t, e, token, depositor, 50)
	e.CommitteeInvoker(depositor).Invoke(t, stackitem.Null{}, "deposit", int64(50))
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		tokenPayment(token, 50),
	}), "getUserDepositedFees", depositor)

	// the payout callback repeats the withdrawal request while the first
	// one is in flight; the second request must find the entry gone
	e.CommitteeInvoker(depositor).Invoke(t, stackitem.Null{}, "withdraw", int64(50))

	e.CommitteeInvoker(token).Invoke(t, int64(50), "balanceOf", depositor)
	e.CommitteeInvoker(token).Invoke(t, int64(50), "balanceOf", c.Hash)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{}),
		"getUserDepositedFees", depositor)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		tokenPayment(token, 50),
	}), "getUserDepositedFees", victimHash)
}

func serviceOption(destination util.Uint160, asset []byte, amount int64) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(destination.BytesBE()),
		stackitem.NewByteArray(asset),
		stackitem.Make(amount),
	})
}

// registerTwoOptions stages a two-option service: one option requires the
// token, the other doesn't require any specific asset.
func registerTwoOptions(t *testing.T, c *neotest.ContractInvoker, service neotest.Signer, destination, token util.Uint160) {
	c.WithSigners(service).Invoke(t, stackitem.Null{}, "registerService",
		service.ScriptHash(),
		[]interface{}{destination, destination},
		[]interface{}{token.BytesBE(), []byte{}},
		[]interface{}{int64(500), int64(300)})
}

func TestSubscription_RegisterService(t *testing.T) {
	e, c := newSubscriptionInvoker(t)

	// deployment writes config keys, none of them may surface as a
	// pending service
	require.Empty(t, toUint160Set(t, c, "getPendingServices"))

	token := deployTestToken(t, e)
	c.Invoke(t, stackitem.Null{}, "addAcceptedFeesTokens",
		[]interface{}{token})

	service := e.NewAccount(t)
	serviceHash := service.ScriptHash()
	cService := c.WithSigners(service)

	c.InvokeFail(t, common.ErrWitnessFailed, "registerService", serviceHash,
		[]interface{}{token}, []interface{}{[]byte{}}, []interface{}{int64(1)})

	cService.InvokeFail(t, subscription.ErrEmptyArguments, "registerService",
		serviceHash, []interface{}{}, []interface{}{}, []interface{}{})

	// destinations must be deployed contracts
	cService.InvokeFail(t, subscription.ErrInvalidDestination, "registerService",
		serviceHash, []interface{}{serviceHash},
		[]interface{}{[]byte{}}, []interface{}{int64(1)})

	// a required payment token must be in the accepted set
	unknownToken := util.Uint160{0xff, 0x01}
	cService.InvokeFail(t, subscription.ErrInvalidPaymentToken, "registerService",
		serviceHash, []interface{}{token},
		[]interface{}{unknownToken.BytesBE()}, []interface{}{int64(1)})

	registerTwoOptions(t, c, service, token, token)

	pending := toUint160Set(t, c, "getPendingServices")
	require.ElementsMatch(t, [][]byte{serviceHash.BytesBE()}, pending)

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		serviceOption(token, token.BytesBE(), 500),
		serviceOption(token, []byte{}, 300),
	}), "getPendingServiceInfo", serviceHash)

	// staging more options before approval accumulates them
	registerTwoOptions(t, c, service, token, token)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		serviceOption(token, token.BytesBE(), 500),
		serviceOption(token, []byte{}, 300),
		serviceOption(token, token.BytesBE(), 500),
		serviceOption(token, []byte{}, 300),
	}), "getPendingServiceInfo", serviceHash)

	c.Invoke(t, stackitem.Null{}, "approveService", serviceHash)
	cService.InvokeFail(t, subscription.ErrAlreadyRegistered, "registerService",
		serviceHash, []interface{}{token},
		[]interface{}{[]byte{}}, []interface{}{int64(1)})
}

func TestSubscription_ApproveService(t *testing.T) {
	e, c := newSubscriptionInvoker(t)

	token := deployTestToken(t, e)
	c.Invoke(t, stackitem.Null{}, "addAcceptedFeesTokens",
		[]interface{}{token})

	service := e.NewAccount(t)
	serviceHash := service.ScriptHash()

	c.InvokeFail(t, subscription.ErrUnknownService, "approveService", serviceHash)

	registerTwoOptions(t, c, service, token, token)

	acc := e.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"approveService", serviceHash)

	c.Invoke(t, stackitem.Null{}, "approveService", serviceHash)
	c.Invoke(t, int64(1), "getServiceID", serviceHash)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		serviceOption(token, token.BytesBE(), 500),
		serviceOption(token, []byte{}, 300),
	}), "getServiceInfo", int64(1))

	// pending state is consumed by approval
	require.Empty(t, toUint160Set(t, c, "getPendingServices"))
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{}),
		"getPendingServiceInfo", serviceHash)

	// approval is one-shot
	c.InvokeFail(t, subscription.ErrUnknownService, "approveService", serviceHash)
}

func TestSubscription_UnregisterService(t *testing.T) {
	e, c := newSubscriptionInvoker(t)

	token := deployTestToken(t, e)
	c.Invoke(t, stackitem.Null{}, "addAcceptedFeesTokens",
		[]interface{}{token})

	service := e.NewAccount(t)
	serviceHash := service.ScriptHash()
	cService := c.WithSigners(service)

	// safe to call with no registration at all
	cService.Invoke(t, stackitem.Null{}, "unregisterService", serviceHash)

	// drops a pending registration
	registerTwoOptions(t, c, service, token, token)
	cService.Invoke(t, stackitem.Null{}, "unregisterService", serviceHash)
	require.Empty(t, toUint160Set(t, c, "getPendingServices"))
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{}),
		"getPendingServiceInfo", serviceHash)
	c.InvokeFail(t, subscription.ErrUnknownService, "approveService", serviceHash)

	// drops an approved service together with its options
	registerTwoOptions(t, c, service, token, token)
	c.Invoke(t, stackitem.Null{}, "approveService", serviceHash)
	c.Invoke(t, int64(1), "getServiceID", serviceHash)

	cService.Invoke(t, stackitem.Null{}, "unregisterService", serviceHash)
	c.Invoke(t, int64(0), "getServiceID", serviceHash)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{}), "getServiceInfo", int64(1))

	// the service can go through the cycle again, ids are not reused
	registerTwoOptions(t, c, service, token, token)
	c.Invoke(t, stackitem.Null{}, "approveService", serviceHash)
	c.Invoke(t, int64(2), "getServiceID", serviceHash)
}

func TestSubscription_Subscribe(t *testing.T) {
	e, c := newSubscriptionInvoker(t)

	token := deployTestToken(t, e)
	c.Invoke(t, stackitem.Null{}, "addAcceptedFeesTokens",
		[]interface{}{token})

	service := e.NewAccount(t)
	registerTwoOptions(t, c, service, token, token)
	c.Invoke(t, stackitem.Null{}, "approveService", service.ScriptHash())

	user := e.NewAccount(t)
	userHash := user.ScriptHash()
	cUser := c.WithSigners(user)

	cUser.InvokeFail(t, subscription.ErrInvalidServiceIndex, "subscribe", userHash,
		[]interface{}{int64(1)}, []interface{}{int64(2)},
		[]interface{}{int64(subscription.SubscriptionDaily)})
	cUser.InvokeFail(t, subscription.ErrInvalidServiceIndex, "subscribe", userHash,
		[]interface{}{int64(99)}, []interface{}{int64(0)},
		[]interface{}{int64(subscription.SubscriptionDaily)})
	cUser.InvokeFail(t, subscription.ErrInvalidSubscriptionType, "subscribe", userHash,
		[]interface{}{int64(1)}, []interface{}{int64(0)},
		[]interface{}{int64(subscription.SubscriptionNone)})

	// a fresh user gets an id allocated on first subscription
	c.Invoke(t, int64(0), "getUserID", userHash)
	cUser.Invoke(t, stackitem.Null{}, "subscribe", userHash,
		[]interface{}{int64(1)}, []interface{}{int64(0)},
		[]interface{}{int64(subscription.SubscriptionDaily)})
	c.Invoke(t, int64(1), "getUserID", userHash)

	require.Equal(t, []int64{1}, subscribedUsers(t, c, 1, 0))
	c.Invoke(t, int64(subscription.SubscriptionDaily),
		"getSubscriptionType", int64(1), int64(1), int64(0))

	// re-subscribing only overwrites the period tag
	cUser.Invoke(t, stackitem.Null{}, "subscribe", userHash,
		[]interface{}{int64(1)}, []interface{}{int64(0)},
		[]interface{}{int64(subscription.SubscriptionMonthly)})
	require.Equal(t, []int64{1}, subscribedUsers(t, c, 1, 0))
	c.Invoke(t, int64(subscription.SubscriptionMonthly),
		"getSubscriptionType", int64(1), int64(1), int64(0))
}

func TestSubscription_Unsubscribe(t *testing.T) {
	e, c := newSubscriptionInvoker(t)

	token := deployTestToken(t, e)
	c.Invoke(t, stackitem.Null{}, "addAcceptedFeesTokens",
		[]interface{}{token})

	service := e.NewAccount(t)
	registerTwoOptions(t, c, service, token, token)
	c.Invoke(t, stackitem.Null{}, "approveService", service.ScriptHash())

	user := e.NewAccount(t)
	userHash := user.ScriptHash()
	cUser := c.WithSigners(user)

	// the user was never seen at all
	cUser.InvokeFail(t, common.ErrUnknownAddress, "unsubscribe", userHash,
		[]interface{}{int64(1)}, []interface{}{int64(0)})

	cUser.Invoke(t, stackitem.Null{}, "subscribe", userHash,
		[]interface{}{int64(1)}, []interface{}{int64(0)},
		[]interface{}{int64(subscription.SubscriptionWeekly)})

	cUser.InvokeFail(t, subscription.ErrInvalidServiceIndex, "unsubscribe", userHash,
		[]interface{}{int64(1)}, []interface{}{int64(5)})

	// round-trip: the subscriber set and the tag return to the initial state
	cUser.Invoke(t, stackitem.Null{}, "unsubscribe", userHash,
		[]interface{}{int64(1)}, []interface{}{int64(0)})
	require.Empty(t, subscribedUsers(t, c, 1, 0))
	c.Invoke(t, int64(subscription.SubscriptionNone),
		"getSubscriptionType", int64(1), int64(1), int64(0))

	// removing a subscription that was never made is a no-op
	cUser.Invoke(t, stackitem.Null{}, "unsubscribe", userHash,
		[]interface{}{int64(1)}, []interface{}{int64(1)})
}

func TestSubscription_Pairs(t *testing.T) {
	e := newExecutor(t)

	pairStub := deployPairStub(t, e, 3)
	h := deploySubscriptionContract(t, e, pairStub)
	c := e.CommitteeInvoker(h)

	token := deployTestToken(t, e)

	acc := e.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"addUsdcPair", token, pairStub)

	c.InvokeFail(t, subscription.ErrInvalidToken, "addUsdcPair",
		[]byte{1, 2, 3}, pairStub)
	c.InvokeFail(t, subscription.ErrInvalidPairAddress, "addUsdcPair",
		token, acc.ScriptHash())

	c.InvokeFail(t, subscription.ErrNoPairForToken, "getPrice", token, int64(100))

	c.Invoke(t, stackitem.Null{}, "addUsdcPair", token, pairStub)
	c.Invoke(t, int64(300), "getPrice", token, int64(100))

	c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"removeUsdcPair", token)
	c.Invoke(t, stackitem.Null{}, "removeUsdcPair", token)
	c.InvokeFail(t, subscription.ErrNoPairForToken, "getPrice", token, int64(100))
}

func TestSubscription_Version(t *testing.T) {
	_, c := newSubscriptionInvoker(t)
	c.Invoke(t, int64(common.Version), "version")
}
