package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// PaymentReceipt is the only template the worker renders today.
const PaymentReceipt = "payment_receipt"

// ReceiptData holds the fields the receipt templates read.
type ReceiptData struct {
	AppName       string    `json:"AppName"`
	Email         string    `json:"Email"`
	TransactionID string    `json:"TransactionID"`
	Classes       []string  `json:"Classes"`
	Amount        string    `json:"Amount"`
	Currency      string    `json:"Currency"`
	PaidAt        time.Time `json:"PaidAt"`
	PaidAtText    string    `json:"PaidAtText"`
	SupportURL    string    `json:"SupportURL"`
}

// Option pattern
type Option func(*ReceiptData)

func WithPaidAt(t time.Time) Option {
	return func(d *ReceiptData) {
		utc := t.UTC()
		d.PaidAt = utc
		d.PaidAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

func WithSupportURL(url string) Option { return func(d *ReceiptData) { d.SupportURL = url } }

// NewReceiptData builds receipt template data for a payment of price in currency.
func NewReceiptData(appName, email, transactionID string, classes []string, price float64, currency string, opts ...Option) ReceiptData {
	d := ReceiptData{
		AppName:       appName,
		Email:         email,
		TransactionID: transactionID,
		Classes:       classes,
		Amount:        fmt.Sprintf("%.2f", price),
		Currency:      strings.ToUpper(currency),
	}
	for _, o := range opts {
		o(&d)
	}
	return d
}

// ToMap converts ReceiptData to a map[string]any for EmailJob.Data
func ToMap(d ReceiptData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			return fallback
		}
		if rv.IsZero() {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"upper":   strings.ToUpper,
		"join":    func(items []any, sep string) string { return joinAny(items, sep) },
		"default": defaultFn,
	}
}

func joinAny(items []any, sep string) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%v", it))
	}
	return strings.Join(parts, sep)
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

// renderFile loads and renders a single template file from the embedded FS.
func renderFile(filename string, isHTML bool, data any) (string, error) {
	var (
		buf bytes.Buffer
		err error
	)

	if isHTML {
		tpl, e := htmpl.New(filename).Funcs(htmlFuncMap).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse html %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	} else {
		tpl, e := texttpl.New(filename).Funcs(textFuncMap).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse text %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render loads and renders subject, text, and html templates for the given base name.
// Expects: <name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl
func Render(name string, data any) (subject string, text string, html string, err error) {
	subject, err = renderFile(name+".subject.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	text, err = renderFile(name+".text.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderFile(name+".html.tmpl", true, data)
	if err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
