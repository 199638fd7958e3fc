// ledger-audit cross-checks the stock ledger against the purchase, sale and
// transfer documents. For every lot id it compares purchased quantity with
// on-hand plus sold quantity and reports lots that do not reconcile, plus any
// ledger row that went negative.
//
// Transfers move quantity between locations under the same lot id, so they
// cancel out of the per-lot balance.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/ledger-audit
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
)

type lotBalance struct {
	LotId     string
	Purchased int
	OnHand    int
	Sold      int
}

func main() {
	lotFilter := flag.String("lot", "", "Optional: audit a single lot id")
	flag.Parse()

	_ = godotenv.Load()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	// Lot id equals the mr_id of the originating purchase. Sales record the
	// lot they were fulfilled from on the line.
	query := `
		SELECT
			l.lot_id AS lot_id,
			COALESCE((
				SELECT SUM(pd.quantity)
				FROM purchase_details pd
				JOIN purchases p ON p.id = pd.purchase_id
				WHERE p.mr_id = l.lot_id
			), 0) AS purchased,
			SUM(l.quantity) AS on_hand,
			COALESCE((
				SELECT SUM(sd.quantity)
				FROM sale_details sd
				WHERE sd.lot_id = l.lot_id
			), 0) AS sold
		FROM inventory_lots l
		GROUP BY l.lot_id
		ORDER BY l.lot_id`

	var balances []lotBalance
	if err := db.Raw(query).Scan(&balances).Error; err != nil {
		fmt.Fprintf(os.Stderr, "audit query: %v\n", err)
		os.Exit(1)
	}

	bad := 0
	for _, b := range balances {
		if *lotFilter != "" && b.LotId != *lotFilter {
			continue
		}
		if b.Purchased != b.OnHand+b.Sold {
			bad++
			fmt.Printf("MISMATCH lot=%s purchased=%d on_hand=%d sold=%d drift=%d\n",
				b.LotId, b.Purchased, b.OnHand, b.Sold, b.Purchased-(b.OnHand+b.Sold))
		}
	}

	var negatives []struct {
		LotId             string
		InventoryLocation string
		ProductName       string
		Quantity          int
	}
	if err := db.Table("inventory_lots").
		Where("quantity < 0").
		Find(&negatives).Error; err != nil {
		fmt.Fprintf(os.Stderr, "negative scan: %v\n", err)
		os.Exit(1)
	}
	for _, n := range negatives {
		bad++
		fmt.Printf("NEGATIVE lot=%s location=%s product=%s qty=%d\n",
			n.LotId, n.InventoryLocation, n.ProductName, n.Quantity)
	}

	if bad > 0 {
		fmt.Printf("%d problem(s) found\n", bad)
		os.Exit(2)
	}
	fmt.Println("ledger reconciles")
}
