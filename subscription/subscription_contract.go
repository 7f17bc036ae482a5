package subscription

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/subscription-contract/common"
)

type (
	// ServiceInfo is a single paid option of a registered service.
	ServiceInfo struct {
		// Destination is an address of the contract serving the option.
		Destination interop.Hash160
		// Asset is a script hash of the payment token required by the
		// option, empty when the option doesn't require a specific one.
		Asset interop.Hash160
		// Amount is a price tag of the option. It is advisory metadata
		// for the service itself, the contract doesn't act on it.
		Amount int
	}

	// WithdrawalResult is returned by WithdrawFunds and lists what was
	// actually transferred back to the user.
	WithdrawalResult struct {
		// GasAmount is the total amount of GAS withdrawn.
		GasAmount int
		// Payments are non-GAS transfers performed, one per asset.
		Payments []common.TokenPayment
	}
)

// Subscription period tags recorded per (user, service, option).
const (
	SubscriptionNone = iota
	SubscriptionDaily
	SubscriptionWeekly
	SubscriptionMonthly
)

const (
	// ErrInvalidToken is thrown when a token script hash has wrong length.
	ErrInvalidToken = "invalid token"
	// ErrNoPayment is thrown on an attempt to deposit nothing.
	ErrNoPayment = "no payment"
	// ErrInvalidPaymentToken is thrown when the deposited or required
	// token is not in the accepted set.
	ErrInvalidPaymentToken = "invalid payment token"
	// ErrEmptyArguments is thrown when a batch endpoint gets no requests.
	ErrEmptyArguments = "no arguments provided"
	// ErrLengthMismatch is thrown when parallel argument lists have
	// different lengths.
	ErrLengthMismatch = "argument lists have different lengths"
	// ErrAlreadyRegistered is thrown when a registered service tries to
	// register again.
	ErrAlreadyRegistered = "service already registered"
	// ErrInvalidDestination is thrown when an option destination is not
	// a deployed contract.
	ErrInvalidDestination = "invalid service address"
	// ErrUnknownService is thrown on approval of a service that is not
	// pending.
	ErrUnknownService = "unknown service"
	// ErrInvalidServiceIndex is thrown when an option index is out of
	// bounds of the service option list.
	ErrInvalidServiceIndex = "invalid service index"
	// ErrInvalidAmount is thrown on a withdrawal request of a
	// non-positive amount.
	ErrInvalidAmount = "non-positive amount"
	// ErrInvalidSubscriptionType is thrown when a subscription tag is
	// out of the known set.
	ErrInvalidSubscriptionType = "invalid subscription type"
	// ErrInvalidPairAddress is thrown when a pair address is not a
	// deployed contract.
	ErrInvalidPairAddress = "invalid pair address"
	// ErrNoPairForToken is thrown by GetPrice when no pair is configured
	// for the token.
	ErrNoPairForToken = "no pair configured for token"
	// ErrTransferFailed is thrown when a token transfer from the
	// contract account fails.
	ErrTransferFailed = "failed to transfer funds, aborting"
)

const (
	acceptedTokenPrefix    = 'a'
	userGasPrefix          = 'g'
	userFeesPrefix         = 'f'
	pendingServicePrefix   = 'p'
	pendingInfoPrefix      = 'q'
	serviceInfoPrefix      = 'i'
	subscribedUsersPrefix  = 'b'
	subscriptionTypePrefix = 't'
	pairPrefix             = 'x'

	// priceQueryKey must not start with any of the prefix bytes above,
	// GetPendingServices iterates over every 'p'-prefixed key.
	priceQueryKey = "oracleQueryAddress"
)

var (
	userIDs    common.IDNamespace
	serviceIDs common.IDNamespace
)

func init() {
	userIDs = common.IDNamespace{CounterKey: 'U', AddressPrefix: 'u', IDPrefix: 'v'}
	serviceIDs = common.IDNamespace{CounterKey: 'S', AddressPrefix: 'c', IDPrefix: 'd'}
}

// nolint:deadcode,unused
func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner      interop.Hash160
		priceQuery interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect owner address length")
	}
	if len(args.priceQuery) != interop.Hash160Len {
		panic("incorrect price query contract script hash length")
	}

	storage.Put(ctx, common.OwnerKey, args.owner)
	storage.Put(ctx, priceQueryKey, args.priceQuery)

	runtime.Log("subscription contract initialized")
}

// Update method updates contract source code and manifest. It can be
// invoked only by the contract owner.
func Update(nefFile, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("subscription contract updated")
}

// AddAcceptedFeesTokens appends tokens to the set of assets accepted for
// fee deposits. GAS must be listed explicitly to enable native deposits.
// Re-adding a listed token is a no-op. It can be invoked only by the
// contract owner.
func AddAcceptedFeesTokens(tokens []interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	for i := range tokens {
		if len(tokens[i]) != interop.Hash160Len {
			panic(ErrInvalidToken)
		}

		storage.Put(ctx, acceptedTokenKey(tokens[i]), 1)
	}
}

// OnNEP17Payment is a callback for NEP-17 transfers and the deposit entry
// point of the fees ledger: transferring an accepted token to the contract
// address credits the sender's balance. The callback panics on transfers
// of unaccepted tokens, so such transfers are rolled back whole.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	if amount <= 0 {
		panic(ErrNoPayment)
	}

	ctx := storage.GetContext()
	asset := runtime.GetCallingScriptHash()
	if storage.Get(ctx, acceptedTokenKey(asset)) == nil {
		panic(ErrInvalidPaymentToken)
	}

	userID := userIDs.GetIDOrInsert(ctx, from)
	if common.BytesEqual(asset, interop.Hash160(gas.Hash)) {
		key := userGasKey(userID)
		storage.Put(ctx, key, common.GetInt(ctx, key)+amount)
	} else {
		fees := common.GetPayments(ctx, userFeesKey(userID))
		fees = common.AddPayment(fees, common.TokenPayment{Asset: asset, Amount: amount})
		common.SetSerialized(ctx, userFeesKey(userID), fees)
	}

	runtime.Notify("Deposit", from, asset, amount)
}

// WithdrawFunds transfers the requested parts of the user's deposited fees
// back to the user. Requests are processed independently: a request for
// more than is held of an asset is skipped without failing the batch, while
// a non-positive amount aborts it. A non-GAS request matches the first
// deposited entry of the asset holding enough funds; an exact match removes
// the entry, a bigger entry is decremented in place. It can be invoked only
// by the user.
func WithdrawFunds(user interop.Hash160, tokens []interop.Hash160, amounts []int) WithdrawalResult {
	common.CheckWitness(user)

	if len(tokens) != len(amounts) {
		panic(ErrLengthMismatch)
	}

	ctx := storage.GetContext()
	userID := userIDs.GetIDNonZero(ctx, user)

	gasHeld := common.GetInt(ctx, userGasKey(userID))
	fees := common.GetPayments(ctx, userFeesKey(userID))

	result := WithdrawalResult{Payments: []common.TokenPayment{}}
	for i := range tokens {
		token := tokens[i]
		amount := amounts[i]
		if amount <= 0 {
			panic(ErrInvalidAmount)
		}

		if common.BytesEqual(token, interop.Hash160(gas.Hash)) {
			if gasHeld < amount {
				continue
			}

			gasHeld -= amount
			result.GasAmount += amount

			continue
		}

		foundIndex := -1
		for j := range fees {
			if common.BytesEqual(fees[j].Asset, token) && fees[j].Amount >= amount {
				foundIndex = j
				break
			}
		}
		if foundIndex == -1 {
			continue
		}

		if fees[foundIndex].Amount == amount {
			kept := []common.TokenPayment{}
			for j := range fees {
				if j != foundIndex {
					kept = append(kept, fees[j])
				}
			}
			fees = kept
		} else {
			fees[foundIndex].Amount -= amount
		}

		result.Payments = append(result.Payments, common.TokenPayment{Asset: token, Amount: amount})
	}

	// Ledger is settled before any funds move: a transfer invokes the
	// receiving contract, which may call back in.
	storage.Put(ctx, userGasKey(userID), gasHeld)
	common.SetSerialized(ctx, userFeesKey(userID), fees)

	self := runtime.GetExecutingScriptHash()
	if result.GasAmount > 0 {
		if !gas.Transfer(self, user, result.GasAmount, nil) {
			panic(ErrTransferFailed)
		}
	}

	for i := range result.Payments {
		p := result.Payments[i]
		transferred := contract.Call(p.Asset, "transfer", contract.All,
			self, user, p.Amount, nil).(bool)
		if !transferred {
			panic(ErrTransferFailed)
		}
	}

	runtime.Notify("Withdraw", user, result.GasAmount)

	return result
}

// RegisterService stages paid options of the service for the owner's
// approval. Options are given as parallel lists of destination contract
// addresses, required payment tokens (an empty value means the option
// doesn't require a specific token) and advisory price tags. Repeated
// calls before approval accumulate options. It can be invoked only by the
// service itself.
func RegisterService(service interop.Hash160, destinations []interop.Hash160, tokens []interop.Hash160, amounts []int) {
	common.CheckWitness(service)

	if len(destinations) == 0 {
		panic(ErrEmptyArguments)
	}
	if len(destinations) != len(tokens) || len(destinations) != len(amounts) {
		panic(ErrLengthMismatch)
	}

	ctx := storage.GetContext()
	if serviceIDs.GetID(ctx, service) != common.NullID {
		panic(ErrAlreadyRegistered)
	}

	options := getServiceInfos(ctx, pendingInfoKey(service))
	for i := range destinations {
		destination := destinations[i]
		if len(destination) != interop.Hash160Len || management.GetContract(destination) == nil {
			panic(ErrInvalidDestination)
		}

		token := tokens[i]
		if len(token) != 0 {
			if len(token) != interop.Hash160Len || storage.Get(ctx, acceptedTokenKey(token)) == nil {
				panic(ErrInvalidPaymentToken)
			}
		}

		options = append(options, ServiceInfo{
			Destination: destination,
			Asset:       token,
			Amount:      amounts[i],
		})
	}

	common.SetSerialized(ctx, pendingInfoKey(service), options)
	storage.Put(ctx, pendingServiceKey(service), 1)

	runtime.Notify("ServiceRegistered", service)
}

// UnregisterService removes the service from the registry: its service ID
// entry with approved options if it was approved, its pending registration
// if it wasn't. Safe to call in any state. It can be invoked only by the
// service itself.
func UnregisterService(service interop.Hash160) {
	common.CheckWitness(service)

	ctx := storage.GetContext()
	serviceID := serviceIDs.RemoveByAddress(ctx, service)
	if serviceID != common.NullID {
		storage.Delete(ctx, serviceInfoKey(serviceID))
	}

	storage.Delete(ctx, pendingServiceKey(service))
	storage.Delete(ctx, pendingInfoKey(service))

	runtime.Notify("ServiceUnregistered", service)
}

// ApproveService turns a pending registration into a permanent one:
// the service gets an ID and its staged options become available for
// subscriptions. Approval is one-shot, approved options can't be changed.
// It can be invoked only by the contract owner.
func ApproveService(service interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	if storage.Get(ctx, pendingServiceKey(service)) == nil {
		panic(ErrUnknownService)
	}

	serviceID := serviceIDs.InsertNew(ctx, service)
	options := getServiceInfos(ctx, pendingInfoKey(service))
	common.SetSerialized(ctx, serviceInfoKey(serviceID), options)

	storage.Delete(ctx, pendingServiceKey(service))
	storage.Delete(ctx, pendingInfoKey(service))

	runtime.Notify("ServiceApproved", service, serviceID)
}

// Subscribe records the user's subscriptions to the given service options.
// Requests are parallel lists of service IDs, option indexes and
// subscription period tags (SubscriptionDaily, SubscriptionWeekly or
// SubscriptionMonthly). Subscribing to the same option again overwrites
// the recorded tag. It can be invoked only by the user.
func Subscribe(user interop.Hash160, services []int, optionIndexes []int, subscriptionTypes []int) {
	common.CheckWitness(user)

	if len(services) != len(optionIndexes) || len(services) != len(subscriptionTypes) {
		panic(ErrLengthMismatch)
	}

	ctx := storage.GetContext()
	userID := userIDs.GetIDOrInsert(ctx, user)

	for i := range services {
		serviceID := services[i]
		index := optionIndexes[i]
		checkOptionIndex(ctx, serviceID, index)

		typ := subscriptionTypes[i]
		if typ <= SubscriptionNone || typ > SubscriptionMonthly {
			panic(ErrInvalidSubscriptionType)
		}

		storage.Put(ctx, subscriptionTypeKey(userID, serviceID, index), typ)
		storage.Put(ctx, subscribedUserKey(serviceID, index, userID), 1)

		runtime.Notify("Subscribed", user, serviceID, index)
	}
}

// Unsubscribe removes the user's subscriptions to the given service
// options. Removing a subscription that was never made is a no-op as long
// as the option itself exists. It can be invoked only by the user.
func Unsubscribe(user interop.Hash160, services []int, optionIndexes []int) {
	common.CheckWitness(user)

	if len(services) != len(optionIndexes) {
		panic(ErrLengthMismatch)
	}

	ctx := storage.GetContext()
	userID := userIDs.GetIDNonZero(ctx, user)

	for i := range services {
		serviceID := services[i]
		index := optionIndexes[i]
		checkOptionIndex(ctx, serviceID, index)

		storage.Delete(ctx, subscriptionTypeKey(userID, serviceID, index))
		storage.Delete(ctx, subscribedUserKey(serviceID, index, userID))

		runtime.Notify("Unsubscribed", user, serviceID, index)
	}
}

// AddUsdcPair configures the pair contract used to quote the token price
// in USDC. It can be invoked only by the contract owner.
func AddUsdcPair(token interop.Hash160, pair interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	if len(token) != interop.Hash160Len {
		panic(ErrInvalidToken)
	}
	if len(pair) != interop.Hash160Len || management.GetContract(pair) == nil {
		panic(ErrInvalidPairAddress)
	}

	storage.Put(ctx, pairKey(token), pair)
}

// RemoveUsdcPair drops the pair configured for the token. It can be
// invoked only by the contract owner.
func RemoveUsdcPair(token interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	storage.Delete(ctx, pairKey(token))
}

// GetPrice quotes the given amount of the token in USDC via the configured
// pair. It panics if no pair is configured for the token; a failure of the
// pair call aborts the whole transaction.
func GetPrice(token interop.Hash160, amount int) int {
	ctx := storage.GetReadOnlyContext()
	rawPair := storage.Get(ctx, pairKey(token))
	if rawPair == nil {
		panic(ErrNoPairForToken)
	}

	priceQuery := storage.Get(ctx, priceQueryKey).(interop.Hash160)

	return contract.Call(priceQuery, "getSafePriceByDefaultOffset", contract.ReadOnly,
		rawPair.(interop.Hash160), token, amount).(int)
}

// GetAcceptedFeesTokens returns an iterator over script hashes of tokens
// accepted for deposits.
func GetAcceptedFeesTokens() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()

	return storage.Find(ctx, []byte{acceptedTokenPrefix}, storage.KeysOnly|storage.RemovePrefix)
}

// GetUserID returns the internal ID of the user, zero if the user has
// never deposited or subscribed.
func GetUserID(user interop.Hash160) int {
	return userIDs.GetID(storage.GetReadOnlyContext(), user)
}

// GetUserDepositedGas returns the user's GAS balance in the fees ledger.
func GetUserDepositedGas(user interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	userID := userIDs.GetID(ctx, user)
	if userID == common.NullID {
		return 0
	}

	return common.GetInt(ctx, userGasKey(userID))
}

// GetUserDepositedFees returns the user's non-GAS balances in the fees
// ledger, one entry per deposited asset.
func GetUserDepositedFees(user interop.Hash160) []common.TokenPayment {
	ctx := storage.GetReadOnlyContext()
	userID := userIDs.GetID(ctx, user)
	if userID == common.NullID {
		return []common.TokenPayment{}
	}

	return common.GetPayments(ctx, userFeesKey(userID))
}

// GetPendingServices returns an iterator over addresses of services
// registered but not yet approved.
func GetPendingServices() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()

	return storage.Find(ctx, []byte{pendingServicePrefix}, storage.KeysOnly|storage.RemovePrefix)
}

// GetPendingServiceInfo returns options staged by the service awaiting
// approval.
func GetPendingServiceInfo(service interop.Hash160) []ServiceInfo {
	return getServiceInfos(storage.GetReadOnlyContext(), pendingInfoKey(service))
}

// GetServiceID returns the internal ID of an approved service, zero if
// the service was never approved.
func GetServiceID(service interop.Hash160) int {
	return serviceIDs.GetID(storage.GetReadOnlyContext(), service)
}

// GetServiceInfo returns approved options of the service.
func GetServiceInfo(serviceID int) []ServiceInfo {
	return getServiceInfos(storage.GetReadOnlyContext(), serviceInfoKey(serviceID))
}

// GetSubscribedUsers returns an iterator over IDs of users subscribed to
// the given service option. IDs are returned in the fixed-width key
// encoding, IDFromBytes of the common package decodes them.
func GetSubscribedUsers(serviceID int, optionIndex int) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()

	prefix := append([]byte{subscribedUsersPrefix}, common.IDToBytes(serviceID)...)
	prefix = append(prefix, common.IDToBytes(optionIndex)...)

	return storage.Find(ctx, prefix, storage.KeysOnly|storage.RemovePrefix)
}

// GetSubscriptionType returns the period tag recorded for the user's
// subscription to the given service option, SubscriptionNone if there is
// no subscription.
func GetSubscriptionType(userID int, serviceID int, optionIndex int) int {
	ctx := storage.GetReadOnlyContext()

	return common.GetInt(ctx, subscriptionTypeKey(userID, serviceID, optionIndex))
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkOptionIndex(ctx storage.Context, serviceID int, index int) {
	options := getServiceInfos(ctx, serviceInfoKey(serviceID))
	if index < 0 || index >= len(options) {
		panic(ErrInvalidServiceIndex)
	}
}

func getServiceInfos(ctx storage.Context, key []byte) []ServiceInfo {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).([]ServiceInfo)
	}

	return []ServiceInfo{}
}

func acceptedTokenKey(token interop.Hash160) []byte {
	return append([]byte{acceptedTokenPrefix}, token...)
}

func userGasKey(userID int) []byte {
	return append([]byte{userGasPrefix}, common.IDToBytes(userID)...)
}

func userFeesKey(userID int) []byte {
	return append([]byte{userFeesPrefix}, common.IDToBytes(userID)...)
}

func pendingServiceKey(service interop.Hash160) []byte {
	return append([]byte{pendingServicePrefix}, service...)
}

func pendingInfoKey(service interop.Hash160) []byte {
	return append([]byte{pendingInfoPrefix}, service...)
}

func serviceInfoKey(serviceID int) []byte {
	return append([]byte{serviceInfoPrefix}, common.IDToBytes(serviceID)...)
}

func subscribedUserKey(serviceID int, optionIndex int, userID int) []byte {
	key := append([]byte{subscribedUsersPrefix}, common.IDToBytes(serviceID)...)
	key = append(key, common.IDToBytes(optionIndex)...)

	return append(key, common.IDToBytes(userID)...)
}

func subscriptionTypeKey(userID int, serviceID int, optionIndex int) []byte {
	key := append([]byte{subscriptionTypePrefix}, common.IDToBytes(userID)...)
	key = append(key, common.IDToBytes(serviceID)...)

	return append(key, common.IDToBytes(optionIndex)...)
}

func pairKey(token interop.Hash160) []byte {
	return append([]byte{pairPrefix}, token...)
}
