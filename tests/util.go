package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	subscriptionPath = "../subscription"
	subscriberPath   = "../subscriber"

	nep17TokenPath = "../internal/testcontracts/nep17token"
	pairStubPath   = "../internal/testcontracts/pairstub"
	farmStubPath   = "../internal/testcontracts/farmstub"
	depositorPath  = "../internal/testcontracts/depositor"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// deploySubscriptionContract deploys the subscription contract with the
// committee as its owner.
func deploySubscriptionContract(t *testing.T, e *neotest.Executor, priceQuery util.Uint160) util.Uint160 {
	args := make([]interface{}, 2)
	args[0] = e.CommitteeHash
	args[1] = priceQuery

	c := neotest.CompileFile(t, e.CommitteeHash, subscriptionPath, path.Join(subscriptionPath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

func deploySubscriberContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	args := make([]interface{}, 1)
	args[0] = e.CommitteeHash

	c := neotest.CompileFile(t, e.CommitteeHash, subscriberPath, path.Join(subscriberPath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

func deployTestToken(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, nep17TokenPath, path.Join(nep17TokenPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

// deployTestTokenBy deploys another instance of the test token. The
// deploying account makes the contract hash unique.
func deployTestTokenBy(t *testing.T, e *neotest.Executor, signer neotest.Signer) util.Uint160 {
	c := neotest.CompileFile(t, signer.ScriptHash(), nep17TokenPath, path.Join(nep17TokenPath, "config.yml"))
	e.DeployContractBy(t, signer, c, nil)
	return c.Hash
}

// deployDepositorStub deploys the contract depositor bound to the given
// custody contract and fee token.
func deployDepositorStub(t *testing.T, e *neotest.Executor, custody, token util.Uint160) util.Uint160 {
	args := make([]interface{}, 2)
	args[0] = custody
	args[1] = token

	c := neotest.CompileFile(t, e.CommitteeHash, depositorPath, path.Join(depositorPath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

func deployPairStub(t *testing.T, e *neotest.Executor, multiplier int64) util.Uint160 {
	args := make([]interface{}, 1)
	args[0] = multiplier

	c := neotest.CompileFile(t, e.CommitteeHash, pairStubPath, path.Join(pairStubPath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

func deployFarmStub(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, farmStubPath, path.Join(farmStubPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

// newSubscriptionInvoker deploys the subscription contract and returns a
// committee (owner) invoker for it. The price query address is a dummy,
// tests exercising pairs deploy the stub themselves.
func newSubscriptionInvoker(t *testing.T) (*neotest.Executor, *neotest.ContractInvoker) {
	e := newExecutor(t)
	h := deploySubscriptionContract(t, e, util.Uint160{1})
	return e, e.CommitteeInvoker(h)
}

func gasHash(t *testing.T, e *neotest.Executor) util.Uint160 {
	h, err := e.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)
	return h
}

func mintToken(t *testing.T, e *neotest.Executor, token util.Uint160, to util.Uint160, amount int64) {
	e.CommitteeInvoker(token).Invoke(t, stackitem.Null{}, "mint", to, amount)
}

// transferToken performs a NEP-17 transfer signed by the sender. With the
// subscription contract as receiver this is the deposit path.
func transferToken(t *testing.T, e *neotest.Executor, token util.Uint160, from neotest.Signer, to util.Uint160, amount int64) {
	e.NewInvoker(token, from).Invoke(t, true, "transfer", from.ScriptHash(), to, amount, nil)
}

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

// toUint160Set collects an iterator result of a test invocation into a set
// of script hashes, ignoring order.
func toUint160Set(t *testing.T, c *neotest.ContractInvoker, method string, args ...interface{}) [][]byte {
	s, err := c.TestInvoke(t, method, args...)
	require.NoError(t, err)

	arr := iteratorToArray(s.Pop().Value().(*storage.Iterator))
	res := make([][]byte, 0, len(arr))
	for i := range arr {
		b, err := arr[i].TryBytes()
		require.NoError(t, err)
		res = append(res, b)
	}
	return res
}

// subscribedUsers collects IDs of users subscribed to the given service
// option.
func subscribedUsers(t *testing.T, c *neotest.ContractInvoker, serviceID, optionIndex int64) []int64 {
	s, err := c.TestInvoke(t, "getSubscribedUsers", serviceID, optionIndex)
	require.NoError(t, err)

	arr := iteratorToArray(s.Pop().Value().(*storage.Iterator))
	res := make([]int64, 0, len(arr))
	for i := range arr {
		b, err := arr[i].TryBytes()
		require.NoError(t, err)
		res = append(res, bigint.FromBytes(b).Int64())
	}
	return res
}
