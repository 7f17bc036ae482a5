/*
Subscription contract is a custody and service registry contract.

Subscription contract accepts deposits of whitelisted NEP-17 tokens (with
native GAS playing the role of the base coin), tracks the multi-asset fee
balance of every user and allows users to withdraw all or part of it.
Deposits are made with a plain NEP-17 transfer to the contract address;
transfers of tokens outside the accepted set are aborted and thus rolled
back by the token contract.

Independent service contracts register one or more paid options with the
contract and, once the registration is approved by the contract owner,
users can subscribe to these options with a daily, weekly or monthly
period tag. The contract records the bookkeeping only; collecting the
subscription payments is up to the services.

Internally users and services are identified by compact integer IDs
allocated on first contact and never reused. The price of an accepted
token can be quoted in USDC through a configured pair contract.

# Contract notifications

Deposit notification. This notification is produced when a user tops up
the fee balance.

	Deposit:
	  - name: from
	    type: Hash160
	  - name: asset
	    type: Hash160
	  - name: amount
	    type: Integer

Withdraw notification. This notification is produced when a user takes
fees back. It carries the total amount of GAS transferred; non-GAS
transfers produce their own NEP-17 Transfer notifications.

	Withdraw:
	  - name: user
	    type: Hash160
	  - name: gasAmount
	    type: Integer

ServiceRegistered notification. This notification is produced when a
service stages options for approval.

	ServiceRegistered:
	  - name: service
	    type: Hash160

ServiceApproved notification. This notification is produced when the
contract owner approves a pending service.

	ServiceApproved:
	  - name: service
	    type: Hash160
	  - name: serviceID
	    type: Integer

ServiceUnregistered notification. This notification is produced when a
service removes itself from the registry.

	ServiceUnregistered:
	  - name: service
	    type: Hash160

Subscribed and Unsubscribed notifications. These notifications are
produced per processed request of the corresponding endpoint.

	Subscribed:
	  - name: user
	    type: Hash160
	  - name: serviceID
	    type: Integer
	  - name: optionIndex
	    type: Integer

	Unsubscribed:
	  - name: user
	    type: Hash160
	  - name: serviceID
	    type: Integer
	  - name: optionIndex
	    type: Integer
*/
package subscription
