package storefront_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/cucumber/godog"

	"storefront/pkg/catalog"
	"storefront/pkg/logger"
	"storefront/pkg/money"
	"storefront/pkg/persist"
	"storefront/pkg/storage/memory"
	"storefront/pkg/storefront"
)

type storefrontTestContext struct {
	kv       *memory.Store
	products []catalog.Product
	store    *storefront.Store
	lastOp   storefront.Op
	err      error
}

func (c *storefrontTestContext) reset() {
	c.kv = memory.New()
	c.products = nil
	c.store = nil
	c.lastOp = ""
	c.err = nil
}

func (c *storefrontTestContext) open() error {
	log := logger.New(&bytes.Buffer{}, logger.LevelInfo, "features", nil)
	s, err := storefront.New(context.Background(), storefront.DefaultConfig(),
		catalog.New(c.products), persist.New(c.kv, log), log, nil)
	if err != nil {
		return err
	}
	c.store = s
	return nil
}

func (c *storefrontTestContext) theCatalog(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // header
		}
		id, err := strconv.Atoi(row.Cells[0].Value)
		if err != nil {
			return err
		}
		price, err := money.Parse(row.Cells[2].Value)
		if err != nil {
			return err
		}
		c.products = append(c.products, catalog.Product{
			ID:       catalog.ProductID(id),
			Title:    row.Cells[1].Value,
			Price:    price,
			Category: row.Cells[3].Value,
		})
	}
	return nil
}

func (c *storefrontTestContext) aBalanceOf(amount string) error {
	if err := c.kv.Set(context.Background(), persist.KeyBalance, amount); err != nil {
		return err
	}
	return c.open()
}

func (c *storefrontTestContext) iAddOfProduct(qty, id int) error {
	c.lastOp = storefront.OpAddToCart
	c.err = c.store.AddToCart(context.Background(), catalog.ProductID(id), qty)
	return nil
}

func (c *storefrontTestContext) iChangeTheQuantityOfProductTo(id, qty int) error {
	c.lastOp = storefront.OpChangeQty
	c.err = c.store.ChangeQty(context.Background(), catalog.ProductID(id), qty)
	return nil
}

func (c *storefrontTestContext) iApplyTheCoupon(code string) error {
	c.lastOp = storefront.OpApplyCoupon
	c.err = c.store.ApplyCoupon(context.Background(), code)
	return nil
}

func (c *storefrontTestContext) iCheckOut() error {
	c.lastOp = storefront.OpCheckout
	_, c.err = c.store.Checkout(context.Background())
	return nil
}

func (c *storefrontTestContext) theStorefrontIsReloaded() error {
	return c.open()
}

func (c *storefrontTestContext) theOperationSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success but got error: %v", c.err)
	}
	return nil
}

func (c *storefrontTestContext) theOperationFailsWith(kind string) error {
	if c.err == nil {
		return errors.New("expected an error but the operation succeeded")
	}
	got, ok := storefront.KindOf(c.err)
	if !ok {
		return fmt.Errorf("expected a storefront error, got %v", c.err)
	}
	if got.String() != kind {
		return fmt.Errorf("expected %s, got %s", kind, got)
	}
	return nil
}

func (c *storefrontTestContext) theNotificationIs(text string) error {
	n := c.store.Notify(c.lastOp, c.err)
	if n.Text != text {
		return fmt.Errorf("expected notification %q, got %q", text, n.Text)
	}
	return nil
}

func expectAmount(name, want string, got fmt.Stringer) error {
	w, err := money.Parse(want)
	if err != nil {
		return err
	}
	if w.String() != got.String() {
		return fmt.Errorf("expected %s %s, got %s", name, want, got)
	}
	return nil
}

func (c *storefrontTestContext) theSubtotalIs(want string) error {
	return expectAmount("subtotal", want, c.store.Totals().Subtotal)
}

func (c *storefrontTestContext) theDiscountIs(want string) error {
	return expectAmount("discount", want, c.store.Totals().Discount)
}

func (c *storefrontTestContext) theFinalTotalIs(want string) error {
	return expectAmount("final total", want, c.store.Totals().Final)
}

func (c *storefrontTestContext) theBalanceIs(want string) error {
	return expectAmount("balance", want, c.store.Balance())
}

func (c *storefrontTestContext) theCartCountIs(want int) error {
	if got := c.store.Count(); got != want {
		return fmt.Errorf("expected cart count %d, got %d", want, got)
	}
	return nil
}

func (c *storefrontTestContext) theStoredBalanceIs(want string) error {
	raw, err := c.kv.Get(context.Background(), persist.KeyBalance)
	if err != nil {
		return err
	}
	if raw != want {
		return fmt.Errorf("expected stored balance %q, got %q", want, raw)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &storefrontTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the catalog:$`, tc.theCatalog)
	ctx.Step(`^a balance of (\d+(?:\.\d+)?)$`, tc.aBalanceOf)

	ctx.Step(`^I add (\d+) of product (\d+)$`, tc.iAddOfProduct)
	ctx.Step(`^I change the quantity of product (\d+) to (-?\d+)$`, tc.iChangeTheQuantityOfProductTo)
	ctx.Step(`^I apply the coupon "([^"]*)"$`, tc.iApplyTheCoupon)
	ctx.Step(`^I check out$`, tc.iCheckOut)
	ctx.Step(`^the storefront is reloaded$`, tc.theStorefrontIsReloaded)

	ctx.Step(`^the operation succeeds$`, tc.theOperationSucceeds)
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
	ctx.Step(`^the notification is "([^"]*)"$`, tc.theNotificationIs)
	ctx.Step(`^the subtotal is (\d+(?:\.\d+)?)$`, tc.theSubtotalIs)
	ctx.Step(`^the discount is (\d+(?:\.\d+)?)$`, tc.theDiscountIs)
	ctx.Step(`^the final total is (\d+(?:\.\d+)?)$`, tc.theFinalTotalIs)
	ctx.Step(`^the balance is (\d+(?:\.\d+)?)$`, tc.theBalanceIs)
	ctx.Step(`^the cart count is (\d+)$`, tc.theCartCountIs)
	ctx.Step(`^the stored balance is "([^"]*)"$`, tc.theStoredBalanceIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
