package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"globalpartner_checkout/internal/config"
	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
)

type WiseCheckoutInput struct {
	OrderID        string
	ClientCurrency string
}

type WiseCheckoutResult struct {
	PaymentURL string
	TransferID string
	Status     string
}

type IWiseCheckoutUseCase interface {
	CreateCheckout(ctx context.Context, in WiseCheckoutInput) (WiseCheckoutResult, error)
}

// WiseCheckoutUseCase runs quote, recipient and transfer in sequence for the
// platform's own receiving account.
type WiseCheckoutUseCase struct {
	orders     interfaces.IOrderRepository
	gateway    interfaces.IWiseGateway
	recipients interfaces.IRecipientCache
	account    config.BankAccount
	webURL     string
}

var _ IWiseCheckoutUseCase = (*WiseCheckoutUseCase)(nil)

// NewWiseCheckoutUseCase accepts a nil gateway (checkout then fails with
// ErrProviderNotConfigured) and a nil recipient cache (a recipient is created
// per checkout).
func NewWiseCheckoutUseCase(orders interfaces.IOrderRepository, gateway interfaces.IWiseGateway, recipients interfaces.IRecipientCache, account config.BankAccount, webURL string) *WiseCheckoutUseCase {
	return &WiseCheckoutUseCase{
		orders:     orders,
		gateway:    gateway,
		recipients: recipients,
		account:    account,
		webURL:     strings.TrimRight(webURL, "/"),
	}
}

func (u *WiseCheckoutUseCase) CreateCheckout(ctx context.Context, in WiseCheckoutInput) (WiseCheckoutResult, error) {
	log.Printf("[checkout][wise] create start order_id=%q client_currency=%q", in.OrderID, in.ClientCurrency)

	order, err := loadCheckoutOrder(ctx, u.orders, in.OrderID, "wise")
	if err != nil {
		return WiseCheckoutResult{}, err
	}
	if err := u.account.Validate(); err != nil {
		log.Printf("[checkout][wise] platform account invalid order_id=%s err=%v", order.ID, err)
		return WiseCheckoutResult{}, err
	}
	if u.gateway == nil {
		log.Printf("[checkout][wise] gateway not configured order_id=%s", order.ID)
		return WiseCheckoutResult{}, ErrProviderNotConfigured
	}

	source := strings.ToUpper(strings.TrimSpace(in.ClientCurrency))
	if source == "" {
		source = entities.BaseCurrency
	}
	quote, err := u.gateway.CreateQuote(ctx, entities.WiseQuoteRequest{
		SourceCurrency: source,
		TargetCurrency: u.account.Currency,
		TargetAmount:   order.TotalPriceUSD,
	})
	if err != nil {
		log.Printf("[checkout][wise] quote failed order_id=%s err=%v", order.ID, err)
		return WiseCheckoutResult{}, providerFailure(err)
	}

	recipientID, cached, err := u.recipientID(ctx)
	if err != nil {
		log.Printf("[checkout][wise] recipient failed order_id=%s err=%v", order.ID, err)
		return WiseCheckoutResult{}, providerFailure(err)
	}

	reference := order.OrderNumber
	if reference == "" {
		reference = order.ID
	}
	transfer, err := u.gateway.CreateTransfer(ctx, entities.WiseTransferRequest{
		TargetAccount:         recipientID,
		QuoteID:               quote.ID,
		CustomerTransactionID: customerTransactionID(order.ID),
		Reference:             reference,
	})
	if err != nil {
		log.Printf("[checkout][wise] transfer failed order_id=%s quote_id=%s err=%v", order.ID, quote.ID, err)
		if cached && permanentFailure(err) {
			u.forgetRecipient(ctx, recipientID)
		}
		return WiseCheckoutResult{}, providerFailure(err)
	}

	paymentURL := ResolveWisePaymentURL(u.webURL, transfer, quote)
	link := entities.ProviderLink{
		Provider: entities.ProviderWise,
		Wise: &entities.WiseLink{
			TransferID:  transfer.ID,
			QuoteID:     quote.ID,
			RecipientID: recipientID,
			PaymentURL:  paymentURL,
			Status:      transfer.Status,
		},
	}
	if err := linkOrCompensate(ctx, u.orders, order, link, transfer.ID, u.gateway.CancelTransfer); err != nil {
		return WiseCheckoutResult{}, err
	}

	log.Printf("[checkout][wise] create success order_id=%s transfer_id=%s quote_id=%s", order.ID, transfer.ID, quote.ID)
	return WiseCheckoutResult{PaymentURL: paymentURL, TransferID: transfer.ID, Status: transfer.Status}, nil
}

// recipientID returns the cached recipient for the configured account or
// creates one. cached is true when the id came from the cache.
func (u *WiseCheckoutUseCase) recipientID(ctx context.Context) (id string, cached bool, err error) {
	key := accountFingerprint(u.account)
	if u.recipients != nil {
		id, err := u.recipients.Get(ctx, key)
		if err != nil {
			log.Printf("[checkout][wise] recipient cache read failed key=%s err=%v", key, err)
		} else if id != "" {
			return id, true, nil
		}
	}

	recipient, err := u.gateway.CreateRecipient(ctx, entities.WiseRecipientRequest{
		Currency:          u.account.Currency,
		Type:              u.account.Type,
		AccountHolderName: u.account.HolderName,
		LegalType:         u.account.LegalType,
		Details:           recipientDetails(u.account),
	})
	if err != nil {
		return "", false, err
	}

	if u.recipients != nil {
		if err := u.recipients.Set(ctx, key, recipient.ID); err != nil {
			log.Printf("[checkout][wise] recipient cache write failed key=%s err=%v", key, err)
		}
	}
	return recipient.ID, false, nil
}

// forgetRecipient drops a cached recipient Wise refused, so the next
// checkout creates a fresh one.
func (u *WiseCheckoutUseCase) forgetRecipient(ctx context.Context, recipientID string) {
	key := accountFingerprint(u.account)
	if err := u.recipients.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Printf("[checkout][wise] recipient cache evict failed key=%s recipient_id=%s err=%v", key, recipientID, err)
		return
	}
	log.Printf("[checkout][wise] recipient cache evicted key=%s recipient_id=%s", key, recipientID)
}

// permanentFailure reports a provider rejection that retrying will not fix.
func permanentFailure(err error) bool {
	var t interface{ Temporary() bool }
	return errors.As(err, &t) && !t.Temporary()
}

func recipientDetails(a config.BankAccount) map[string]any {
	d := map[string]any{}
	switch a.Type {
	case "aba":
		d["abartn"] = a.RoutingNumber
		d["accountNumber"] = a.AccountNumber
		d["accountType"] = "CHECKING"
	case "swift":
		d["swiftCode"] = a.SwiftCode
		d["accountNumber"] = a.AccountNumber
	case "iban":
		d["IBAN"] = a.IBAN
	case "sort_code":
		d["sortCode"] = a.SortCode
		d["accountNumber"] = a.AccountNumber
	}
	if a.Country != "" || a.City != "" || a.AddressLine != "" {
		d["address"] = map[string]any{
			"country":   a.Country,
			"city":      a.City,
			"postCode":  a.PostCode,
			"firstLine": a.AddressLine,
		}
	}
	return d
}

// accountFingerprint changes whenever any detail Wise stores on the
// recipient changes, so an edited account gets a new recipient.
func accountFingerprint(a config.BankAccount) string {
	h := sha256.New()
	for _, v := range []string{a.HolderName, a.LegalType, a.RoutingNumber, a.AccountNumber, a.SwiftCode, a.IBAN, a.SortCode, a.Country, a.City, a.PostCode, a.AddressLine} {
		h.Write([]byte(v))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%s:%s:%s", a.Currency, a.Type, hex.EncodeToString(h.Sum(nil))[:16])
}

func customerTransactionID(orderID string) string {
	if _, err := uuid.Parse(orderID); err == nil {
		return orderID
	}
	return uuid.NewString()
}

// ResolveWisePaymentURL picks the link the client is sent to: a URL returned
// by the transfer or the quote, then the pay-in session page, then the
// transfer's activity page.
func ResolveWisePaymentURL(webURL string, transfer entities.WiseTransfer, quote entities.WiseQuote) string {
	for _, candidate := range []string{transfer.PaymentURL, quote.PaymentURL} {
		if candidate == "" {
			continue
		}
		if u, err := url.Parse(candidate); err == nil && u.Scheme != "" && u.Host != "" {
			return candidate
		}
		log.Printf("[checkout][wise] ignoring malformed payment url transfer_id=%s url=%q", transfer.ID, candidate)
	}

	if session := firstNonEmpty(transfer.PayinSessionID, quote.PayinSessionID); session != "" {
		return fmt.Sprintf("%s/pay/session/%s", webURL, url.PathEscape(session))
	}

	log.Printf("[checkout][wise] no payment url in provider response, using activity page transfer_id=%s", transfer.ID)
	return fmt.Sprintf("%s/transactions/activities/by-resource/TRANSFER/%s", webURL, url.PathEscape(transfer.ID))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
