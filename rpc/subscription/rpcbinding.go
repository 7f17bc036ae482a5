// Package subscription contains RPC wrappers for Subscription contract.
package subscription

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// CommonTokenPayment is a contract-specific common.TokenPayment type used by its methods.
type CommonTokenPayment struct {
	Asset  util.Uint160
	Amount *big.Int
}

// SubscriptionServiceInfo is a contract-specific subscription.ServiceInfo type
// used by its methods. Asset is empty for options that accept any token.
type SubscriptionServiceInfo struct {
	Destination util.Uint160
	Asset       []byte
	Amount      *big.Int
}

// SubscriptionWithdrawalResult is a contract-specific
// subscription.WithdrawalResult type used by its methods.
type SubscriptionWithdrawalResult struct {
	GasAmount *big.Int
	Payments  []*CommonTokenPayment
}

// DepositEvent represents "Deposit" event emitted by the contract.
type DepositEvent struct {
	From   util.Uint160
	Asset  util.Uint160
	Amount *big.Int
}

// WithdrawEvent represents "Withdraw" event emitted by the contract.
type WithdrawEvent struct {
	User      util.Uint160
	GasAmount *big.Int
}

// ServiceRegisteredEvent represents "ServiceRegistered" event emitted by the contract.
type ServiceRegisteredEvent struct {
	Service util.Uint160
}

// ServiceApprovedEvent represents "ServiceApproved" event emitted by the contract.
type ServiceApprovedEvent struct {
	Service   util.Uint160
	ServiceID *big.Int
}

// ServiceUnregisteredEvent represents "ServiceUnregistered" event emitted by the contract.
type ServiceUnregisteredEvent struct {
	Service util.Uint160
}

// SubscribedEvent represents "Subscribed" event emitted by the contract.
type SubscribedEvent struct {
	User        util.Uint160
	ServiceID   *big.Int
	OptionIndex *big.Int
}

// UnsubscribedEvent represents "Unsubscribed" event emitted by the contract.
type UnsubscribedEvent struct {
	User        util.Uint160
	ServiceID   *big.Int
	OptionIndex *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// GetAcceptedFeesTokens invokes `getAcceptedFeesTokens` method of contract.
func (c *ContractReader) GetAcceptedFeesTokens() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "getAcceptedFeesTokens"))
}

// GetAcceptedFeesTokensExpanded is similar to GetAcceptedFeesTokens (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) GetAcceptedFeesTokensExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "getAcceptedFeesTokens", _numOfIteratorItems))
}

// GetPendingServiceInfo invokes `getPendingServiceInfo` method of contract.
func (c *ContractReader) GetPendingServiceInfo(service util.Uint160) ([]*SubscriptionServiceInfo, error) {
	return func(item stackitem.Item, err error) ([]*SubscriptionServiceInfo, error) {
		if err != nil {
			return nil, err
		}
		return func(item stackitem.Item) ([]*SubscriptionServiceInfo, error) {
			arr, ok := item.Value().([]stackitem.Item)
			if !ok {
				return nil, errors.New("not an array")
			}
			res := make([]*SubscriptionServiceInfo, len(arr))
			for i := range res {
				res[i], err = itemToSubscriptionServiceInfo(arr[i], nil)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
			}
			return res, nil
		}(item)
	}(unwrap.Item(c.invoker.Call(c.hash, "getPendingServiceInfo", service)))
}

// GetPendingServices invokes `getPendingServices` method of contract.
func (c *ContractReader) GetPendingServices() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "getPendingServices"))
}

// GetPendingServicesExpanded is similar to GetPendingServices (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) GetPendingServicesExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "getPendingServices", _numOfIteratorItems))
}

// GetPrice invokes `getPrice` method of contract.
func (c *ContractReader) GetPrice(token util.Uint160, amount *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getPrice", token, amount))
}

// GetServiceID invokes `getServiceID` method of contract.
func (c *ContractReader) GetServiceID(service util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getServiceID", service))
}

// GetServiceInfo invokes `getServiceInfo` method of contract.
func (c *ContractReader) GetServiceInfo(serviceID *big.Int) ([]*SubscriptionServiceInfo, error) {
	return func(item stackitem.Item, err error) ([]*SubscriptionServiceInfo, error) {
		if err != nil {
			return nil, err
		}
		return func(item stackitem.Item) ([]*SubscriptionServiceInfo, error) {
			arr, ok := item.Value().([]stackitem.Item)
			if !ok {
				return nil, errors.New("not an array")
			}
			res := make([]*SubscriptionServiceInfo, len(arr))
			for i := range res {
				res[i], err = itemToSubscriptionServiceInfo(arr[i], nil)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
			}
			return res, nil
		}(item)
	}(unwrap.Item(c.invoker.Call(c.hash, "getServiceInfo", serviceID)))
}

// GetSubscribedUsers invokes `getSubscribedUsers` method of contract.
func (c *ContractReader) GetSubscribedUsers(serviceID *big.Int, optionIndex *big.Int) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "getSubscribedUsers", serviceID, optionIndex))
}

// GetSubscribedUsersExpanded is similar to GetSubscribedUsers (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) GetSubscribedUsersExpanded(serviceID *big.Int, optionIndex *big.Int, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "getSubscribedUsers", _numOfIteratorItems, serviceID, optionIndex))
}

// GetSubscriptionType invokes `getSubscriptionType` method of contract.
func (c *ContractReader) GetSubscriptionType(userID *big.Int, serviceID *big.Int, optionIndex *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getSubscriptionType", userID, serviceID, optionIndex))
}

// GetUserDepositedFees invokes `getUserDepositedFees` method of contract.
func (c *ContractReader) GetUserDepositedFees(user util.Uint160) ([]*CommonTokenPayment, error) {
	return func(item stackitem.Item, err error) ([]*CommonTokenPayment, error) {
		if err != nil {
			return nil, err
		}
		return func(item stackitem.Item) ([]*CommonTokenPayment, error) {
			arr, ok := item.Value().([]stackitem.Item)
			if !ok {
				return nil, errors.New("not an array")
			}
			res := make([]*CommonTokenPayment, len(arr))
			for i := range res {
				res[i], err = itemToCommonTokenPayment(arr[i], nil)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
			}
			return res, nil
		}(item)
	}(unwrap.Item(c.invoker.Call(c.hash, "getUserDepositedFees", user)))
}

// GetUserDepositedGas invokes `getUserDepositedGas` method of contract.
func (c *ContractReader) GetUserDepositedGas(user util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getUserDepositedGas", user))
}

// GetUserID invokes `getUserID` method of contract.
func (c *ContractReader) GetUserID(user util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getUserID", user))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// AddAcceptedFeesTokens creates a transaction invoking `addAcceptedFeesTokens` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddAcceptedFeesTokens(tokens []util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addAcceptedFeesTokens", tokens)
}

// AddAcceptedFeesTokensTransaction creates a transaction invoking `addAcceptedFeesTokens` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddAcceptedFeesTokensTransaction(tokens []util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addAcceptedFeesTokens", tokens)
}

// AddAcceptedFeesTokensUnsigned creates a transaction invoking `addAcceptedFeesTokens` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddAcceptedFeesTokensUnsigned(tokens []util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addAcceptedFeesTokens", nil, tokens)
}

// AddUsdcPair creates a transaction invoking `addUsdcPair` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddUsdcPair(token util.Uint160, pair util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addUsdcPair", token, pair)
}

// AddUsdcPairTransaction creates a transaction invoking `addUsdcPair` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddUsdcPairTransaction(token util.Uint160, pair util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addUsdcPair", token, pair)
}

// AddUsdcPairUnsigned creates a transaction invoking `addUsdcPair` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddUsdcPairUnsigned(token util.Uint160, pair util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addUsdcPair", nil, token, pair)
}

// ApproveService creates a transaction invoking `approveService` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ApproveService(service util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "approveService", service)
}

// ApproveServiceTransaction creates a transaction invoking `approveService` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ApproveServiceTransaction(service util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "approveService", service)
}

// ApproveServiceUnsigned creates a transaction invoking `approveService` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ApproveServiceUnsigned(service util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "approveService", nil, service)
}

// OnNEP17Payment creates a transaction invoking `onNEP17Payment` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) OnNEP17Payment(from util.Uint160, amount *big.Int, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "onNEP17Payment", from, amount, data)
}

// OnNEP17PaymentTransaction creates a transaction invoking `onNEP17Payment` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) OnNEP17PaymentTransaction(from util.Uint160, amount *big.Int, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "onNEP17Payment", from, amount, data)
}

// OnNEP17PaymentUnsigned creates a transaction invoking `onNEP17Payment` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) OnNEP17PaymentUnsigned(from util.Uint160, amount *big.Int, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "onNEP17Payment", nil, from, amount, data)
}

// RegisterService creates a transaction invoking `registerService` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RegisterService(service util.Uint160, destinations []util.Uint160, assets [][]byte, amounts []*big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "registerService", service, destinations, assets, amounts)
}

// RegisterServiceTransaction creates a transaction invoking `registerService` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RegisterServiceTransaction(service util.Uint160, destinations []util.Uint160, assets [][]byte, amounts []*big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "registerService", service, destinations, assets, amounts)
}

// RegisterServiceUnsigned creates a transaction invoking `registerService` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RegisterServiceUnsigned(service util.Uint160, destinations []util.Uint160, assets [][]byte, amounts []*big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "registerService", nil, service, destinations, assets, amounts)
}

// RemoveUsdcPair creates a transaction invoking `removeUsdcPair` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RemoveUsdcPair(token util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "removeUsdcPair", token)
}

// RemoveUsdcPairTransaction creates a transaction invoking `removeUsdcPair` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RemoveUsdcPairTransaction(token util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "removeUsdcPair", token)
}

// RemoveUsdcPairUnsigned creates a transaction invoking `removeUsdcPair` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RemoveUsdcPairUnsigned(token util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "removeUsdcPair", nil, token)
}

// Subscribe creates a transaction invoking `subscribe` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Subscribe(user util.Uint160, serviceIDs []*big.Int, optionIndexes []*big.Int, subscriptionTypes []*big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "subscribe", user, serviceIDs, optionIndexes, subscriptionTypes)
}

// SubscribeTransaction creates a transaction invoking `subscribe` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SubscribeTransaction(user util.Uint160, serviceIDs []*big.Int, optionIndexes []*big.Int, subscriptionTypes []*big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "subscribe", user, serviceIDs, optionIndexes, subscriptionTypes)
}

// SubscribeUnsigned creates a transaction invoking `subscribe` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SubscribeUnsigned(user util.Uint160, serviceIDs []*big.Int, optionIndexes []*big.Int, subscriptionTypes []*big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "subscribe", nil, user, serviceIDs, optionIndexes, subscriptionTypes)
}

// Unsubscribe creates a transaction invoking `unsubscribe` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Unsubscribe(user util.Uint160, serviceIDs []*big.Int, optionIndexes []*big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unsubscribe", user, serviceIDs, optionIndexes)
}

// UnsubscribeTransaction creates a transaction invoking `unsubscribe` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UnsubscribeTransaction(user util.Uint160, serviceIDs []*big.Int, optionIndexes []*big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unsubscribe", user, serviceIDs, optionIndexes)
}

// UnsubscribeUnsigned creates a transaction invoking `unsubscribe` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UnsubscribeUnsigned(user util.Uint160, serviceIDs []*big.Int, optionIndexes []*big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unsubscribe", nil, user, serviceIDs, optionIndexes)
}

// UnregisterService creates a transaction invoking `unregisterService` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UnregisterService(service util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unregisterService", service)
}

// UnregisterServiceTransaction creates a transaction invoking `unregisterService` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UnregisterServiceTransaction(service util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unregisterService", service)
}

// UnregisterServiceUnsigned creates a transaction invoking `unregisterService` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UnregisterServiceUnsigned(service util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unregisterService", nil, service)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// WithdrawFunds creates a transaction invoking `withdrawFunds` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) WithdrawFunds(user util.Uint160, tokens []util.Uint160, amounts []*big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdrawFunds", user, tokens, amounts)
}

// WithdrawFundsTransaction creates a transaction invoking `withdrawFunds` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawFundsTransaction(user util.Uint160, tokens []util.Uint160, amounts []*big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdrawFunds", user, tokens, amounts)
}

// WithdrawFundsUnsigned creates a transaction invoking `withdrawFunds` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawFundsUnsigned(user util.Uint160, tokens []util.Uint160, amounts []*big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdrawFunds", nil, user, tokens, amounts)
}

// itemToCommonTokenPayment converts stack item into *CommonTokenPayment.
func itemToCommonTokenPayment(item stackitem.Item, err error) (*CommonTokenPayment, error) {
	if err != nil {
		return nil, err
	}
	var res = new(CommonTokenPayment)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of CommonTokenPayment from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *CommonTokenPayment) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Asset, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	res.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// itemToSubscriptionServiceInfo converts stack item into *SubscriptionServiceInfo.
func itemToSubscriptionServiceInfo(item stackitem.Item, err error) (*SubscriptionServiceInfo, error) {
	if err != nil {
		return nil, err
	}
	var res = new(SubscriptionServiceInfo)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of SubscriptionServiceInfo from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *SubscriptionServiceInfo) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Destination, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Destination: %w", err)
	}

	index++
	res.Asset, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	res.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// itemToSubscriptionWithdrawalResult converts stack item into *SubscriptionWithdrawalResult.
func itemToSubscriptionWithdrawalResult(item stackitem.Item, err error) (*SubscriptionWithdrawalResult, error) {
	if err != nil {
		return nil, err
	}
	var res = new(SubscriptionWithdrawalResult)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of SubscriptionWithdrawalResult from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *SubscriptionWithdrawalResult) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.GasAmount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field GasAmount: %w", err)
	}

	index++
	res.Payments, err = func(item stackitem.Item) ([]*CommonTokenPayment, error) {
		if _, ok := item.(stackitem.Null); ok {
			return nil, nil
		}
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]*CommonTokenPayment, len(arr))
		for i := range res {
			res[i], err = itemToCommonTokenPayment(arr[i], nil)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Payments: %w", err)
	}

	return nil
}

// DepositEventsFromApplicationLog retrieves a set of all emitted events
// with "Deposit" name from the provided [result.ApplicationLog].
func DepositEventsFromApplicationLog(log *result.ApplicationLog) ([]*DepositEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DepositEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Deposit" {
				continue
			}
			event := new(DepositEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DepositEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DepositEvent or
// returns an error if it's not possible to do to so.
func (e *DepositEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.From, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}

	index++
	e.Asset, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// WithdrawEventsFromApplicationLog retrieves a set of all emitted events
// with "Withdraw" name from the provided [result.ApplicationLog].
func WithdrawEventsFromApplicationLog(log *result.ApplicationLog) ([]*WithdrawEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*WithdrawEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Withdraw" {
				continue
			}
			event := new(WithdrawEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize WithdrawEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to WithdrawEvent or
// returns an error if it's not possible to do to so.
func (e *WithdrawEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.User, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field User: %w", err)
	}

	index++
	e.GasAmount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field GasAmount: %w", err)
	}

	return nil
}

// ServiceRegisteredEventsFromApplicationLog retrieves a set of all emitted events
// with "ServiceRegistered" name from the provided [result.ApplicationLog].
func ServiceRegisteredEventsFromApplicationLog(log *result.ApplicationLog) ([]*ServiceRegisteredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ServiceRegisteredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ServiceRegistered" {
				continue
			}
			event := new(ServiceRegisteredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ServiceRegisteredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ServiceRegisteredEvent or
// returns an error if it's not possible to do to so.
func (e *ServiceRegisteredEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.Service, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Service: %w", err)
	}

	return nil
}

// ServiceApprovedEventsFromApplicationLog retrieves a set of all emitted events
// with "ServiceApproved" name from the provided [result.ApplicationLog].
func ServiceApprovedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ServiceApprovedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ServiceApprovedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ServiceApproved" {
				continue
			}
			event := new(ServiceApprovedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ServiceApprovedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ServiceApprovedEvent or
// returns an error if it's not possible to do to so.
func (e *ServiceApprovedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.Service, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Service: %w", err)
	}

	index++
	e.ServiceID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ServiceID: %w", err)
	}

	return nil
}

// ServiceUnregisteredEventsFromApplicationLog retrieves a set of all emitted events
// with "ServiceUnregistered" name from the provided [result.ApplicationLog].
func ServiceUnregisteredEventsFromApplicationLog(log *result.ApplicationLog) ([]*ServiceUnregisteredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ServiceUnregisteredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ServiceUnregistered" {
				continue
			}
			event := new(ServiceUnregisteredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ServiceUnregisteredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ServiceUnregisteredEvent or
// returns an error if it's not possible to do to so.
func (e *ServiceUnregisteredEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.Service, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Service: %w", err)
	}

	return nil
}

// SubscribedEventsFromApplicationLog retrieves a set of all emitted events
// with "Subscribed" name from the provided [result.ApplicationLog].
func SubscribedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SubscribedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*SubscribedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Subscribed" {
				continue
			}
			event := new(SubscribedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize SubscribedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to SubscribedEvent or
// returns an error if it's not possible to do to so.
func (e *SubscribedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.User, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field User: %w", err)
	}

	index++
	e.ServiceID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ServiceID: %w", err)
	}

	index++
	e.OptionIndex, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field OptionIndex: %w", err)
	}

	return nil
}

// UnsubscribedEventsFromApplicationLog retrieves a set of all emitted events
// with "Unsubscribed" name from the provided [result.ApplicationLog].
func UnsubscribedEventsFromApplicationLog(log *result.ApplicationLog) ([]*UnsubscribedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*UnsubscribedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Unsubscribed" {
				continue
			}
			event := new(UnsubscribedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize UnsubscribedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to UnsubscribedEvent or
// returns an error if it's not possible to do to so.
func (e *UnsubscribedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.User, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field User: %w", err)
	}

	index++
	e.ServiceID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ServiceID: %w", err)
	}

	index++
	e.OptionIndex, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field OptionIndex: %w", err)
	}

	return nil
}
