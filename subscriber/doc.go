/*
Subscriber contract is a thin companion of the Subscription contract.

It forwards boosted farm reward claims to a farm contract on behalf of a
user and stores the energy threshold configuration consumed by off-chain
subscriber services.
*/
package subscriber
