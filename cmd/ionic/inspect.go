package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/reza1mahb/zano/pkg/mathutil"
	pkgswap "github.com/reza1mahb/zano/pkg/swap"
	"github.com/reza1mahb/zano/pkg/wallet"
)

// nativePrecision is the number of decimal places of the native coin.
const nativePrecision = 12

var inspect = cli.Command{
	Name:  "inspect",
	Usage: "decode a swap proposal and print its terms",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "proposal",
			Usage: "the encoded proposal, or the path of a file containing it",
		},
	},
	Action: inspectAction,
}

func inspectAction(ctx *cli.Context) error {
	encoded := ctx.String("proposal")
	if len(encoded) <= 0 {
		return fmt.Errorf("missing --proposal")
	}
	if buf, err := os.ReadFile(encoded); err == nil {
		encoded = strings.TrimSpace(string(buf))
	}

	info, err := pkgswap.Decode([]byte(encoded))
	if err != nil {
		return err
	}

	fmt.Printf("proposal id: %s (version %d)\n", info.ID, info.Version)
	fmt.Printf("initiator:   %s\n", info.InitiatorAddress)
	fmt.Printf("fee paid by: %s\n", feePayer(info.Terms.FeePaidByA))
	fmt.Printf("mixins:      %d\n", info.Terms.Mixins)
	fmt.Println("initiator sends:")
	printFunds(info.Terms.ToFinalizer)
	fmt.Println("initiator receives:")
	printFunds(info.Terms.ToInitiator)
	return nil
}

func feePayer(feePaidByA bool) string {
	if feePaidByA {
		return "initiator"
	}
	return "finalizer"
}

func printFunds(funds []wallet.AssetFunds) {
	for _, f := range funds {
		if f.Asset == wallet.NativeAsset {
			fmt.Printf("  %s native coin\n", mathutil.FormatAmount(f.Amount, nativePrecision))
			continue
		}
		fmt.Printf("  %d units of asset %s\n", f.Amount, f.Asset)
	}
}
