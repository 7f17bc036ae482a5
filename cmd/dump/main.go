package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/subscription-contract/rpc/subscription"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractHash := flag.String("contract", "", "Subscription contract hash in LE hex form")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractHash == "":
		log.Fatal("missing contract hash")
	}

	h, err := util.Uint160DecodeStringLE(*contractHash)
	if err != nil {
		log.Fatal(fmt.Errorf("decode contract hash: %w", err))
	}

	err = _dump(*neoRPCEndpoint, h)
	if err != nil {
		log.Fatal(err)
	}
}

func _dump(neoBlockchainRPCEndpoint string, contract util.Uint160) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	reader := subscription.NewReader(b.inv, contract)

	version, err := reader.Version()
	if err != nil {
		return fmt.Errorf("get contract version: %w", err)
	}

	fmt.Printf("Subscription contract %s, version %s\n", contract.StringLE(), version)

	accepted, err := b.traverseBytes(reader.GetAcceptedFeesTokens())
	if err != nil {
		return fmt.Errorf("list accepted fees tokens: %w", err)
	}

	fmt.Printf("Accepted fees tokens (%d):\n", len(accepted))
	for i := range accepted {
		u, err := util.Uint160DecodeBytesBE(accepted[i])
		if err != nil {
			return fmt.Errorf("decode accepted token #%d: %w", i, err)
		}
		fmt.Printf("  %s\n", u.StringLE())
	}

	pending, err := b.traverseBytes(reader.GetPendingServices())
	if err != nil {
		return fmt.Errorf("list pending services: %w", err)
	}

	fmt.Printf("Pending services (%d):\n", len(pending))
	for i := range pending {
		u, err := util.Uint160DecodeBytesBE(pending[i])
		if err != nil {
			return fmt.Errorf("decode pending service #%d: %w", i, err)
		}

		options, err := reader.GetPendingServiceInfo(u)
		if err != nil {
			return fmt.Errorf("get pending options of service %s: %w", u.StringLE(), err)
		}

		fmt.Printf("  %s\n", u.StringLE())
		for _, opt := range options {
			asset := "any"
			if len(opt.Asset) != 0 {
				au, err := util.Uint160DecodeBytesBE(opt.Asset)
				if err != nil {
					return fmt.Errorf("decode option asset of service %s: %w", u.StringLE(), err)
				}
				asset = au.StringLE()
			}
			fmt.Printf("    destination %s, asset %s, amount %s\n",
				opt.Destination.StringLE(), asset, opt.Amount)
		}
	}

	var nItems int
	err = b.iterateContractStorage(contract, func(key, value []byte) error {
		nItems++
		return nil
	})
	if err != nil {
		return fmt.Errorf("iterate contract storage: %w", err)
	}

	fmt.Printf("Total storage items: %d\n", nItems)

	return nil
}
