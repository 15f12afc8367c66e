package i18n

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"product-catalog/internal/domain/product"
	"product-catalog/internal/domain/review"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

// Bundle keys
const (
	KeyProduct   = "product"
	KeyReview    = "review"
	KeyNoReviews = "no.reviews"

	keyMoney      = "money"
	keyCurrency   = "currency"
	keyDateLayout = "date.layout"
)

var requiredKeys = []string{KeyProduct, KeyReview, KeyNoReviews, keyMoney, keyCurrency, keyDateLayout}

const moneyScale = 2

// Formatter renders catalog values for a single locale. It is safe for concurrent use.
type Formatter struct {
	tag        language.Tag
	mu         sync.Mutex // guards printer
	printer    *message.Printer
	unit       currency.Unit
	symbol     string
	groupSep   string
	decimalSep string
	dateLayout string
	texts      map[string]string
}

func newFormatter(tag language.Tag, messages map[string]string) (*Formatter, error) {
	for _, key := range requiredKeys {
		if _, ok := messages[key]; !ok {
			return nil, fmt.Errorf("bundle %s is missing key %q", tag, key)
		}
	}

	unit, err := currency.ParseISO(messages[keyCurrency])
	if err != nil {
		return nil, fmt.Errorf("bundle %s has an invalid currency: %w", tag, err)
	}

	b := catalog.NewBuilder(catalog.Fallback(tag))
	for key, tmpl := range messages {
		if err := b.SetString(tag, key, tmpl); err != nil {
			return nil, fmt.Errorf("bundle %s: invalid template %q: %w", tag, key, err)
		}
	}
	p := message.NewPrinter(tag, message.Catalog(b))
	group, dec := separators(p)

	return &Formatter{
		tag:        tag,
		printer:    p,
		unit:       unit,
		symbol:     p.Sprint(currency.Symbol(unit)),
		groupSep:   group,
		decimalSep: dec,
		dateLayout: messages[keyDateLayout],
		texts:      messages,
	}, nil
}

// separators reads the locale's grouping and decimal marks off a sample number.
func separators(p *message.Printer) (group, dec string) {
	sample := p.Sprint(number.Decimal(1234567.5, number.Scale(1)))
	one := strings.IndexRune(sample, '1')
	two := strings.IndexRune(sample, '2')
	seven := strings.IndexRune(sample, '7')
	five := strings.LastIndex(sample, "5")
	if one < 0 || two <= one || seven < two || five <= seven {
		return ",", "."
	}
	return sample[one+1 : two], sample[seven+1 : five]
}

func (f *Formatter) Tag() string { return f.tag.String() }

func (f *Formatter) Currency() string { return f.unit.String() }

// FormatProduct renders name, price, stars and best-before date. Non-perishable products
// show today's date.
func (f *Formatter) FormatProduct(p product.Product, today time.Time) string {
	money := f.Money(p.Price())

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.printer.Sprintf(KeyProduct,
		p.Name(),
		money,
		p.Rating().Stars(),
		f.Date(p.BestBefore(today)),
	)
}

func (f *Formatter) FormatReview(r review.Review) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.printer.Sprintf(KeyReview, r.Rating().Stars(), r.Comment().String())
}

// Money renders amount in the locale's currency, rounded half away from zero to two places.
// Digits come from the decimal itself, so large sums keep every cent.
func (f *Formatter) Money(amount decimal.Decimal) string {
	fixed := amount.Round(moneyScale).StringFixed(moneyScale)
	sign := ""
	if rest, ok := strings.CutPrefix(fixed, "-"); ok {
		sign, fixed = "-", rest
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	digits := sign + groupDigits(whole, f.groupSep) + f.decimalSep + frac

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.printer.Sprintf(keyMoney, f.symbol, digits)
}

func groupDigits(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func (f *Formatter) Date(t time.Time) string {
	return t.Format(f.dateLayout)
}

// Text returns the bundle entry for key, or key itself when the bundle has none.
func (f *Formatter) Text(key string) string {
	if s, ok := f.texts[key]; ok {
		return s
	}
	return key
}
