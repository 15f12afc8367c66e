// Package record reads and writes the comma-separated text records that hold products
// and reviews on disk.
//
//	product: TAG, id, name, price, ratingOrdinal[, bestBeforeISO]
//	review:  ratingOrdinal, comment
//
// TAG is F for perishable products (which carry the date) and D for the rest.
package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"product-catalog/internal/domain/product"
	"product-catalog/internal/domain/rating"
	"product-catalog/internal/domain/review"
	"product-catalog/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	TagPerishable    = "F"
	TagNonPerishable = "D"

	separator  = ","
	lineBreaks = "\r\n"
	dateLayout = time.DateOnly

	perishableFields    = 6
	nonPerishableFields = 5
	reviewFields        = 2
)

func TagOf(kind product.Kind) string {
	if kind == product.KindPerishable {
		return TagPerishable
	}
	return TagNonPerishable
}

// ParseProduct parses one product record. Errors are marked with errs.ErrMalformedRecord.
func ParseProduct(line string) (product.Product, error) {
	fields := splitFields(line, -1)
	if len(fields) == 0 || fields[0] == "" {
		return product.Product{}, malformed(line, "missing product tag")
	}

	var kind product.Kind
	switch fields[0] {
	case TagPerishable:
		kind = product.KindPerishable
		if len(fields) != perishableFields {
			return product.Product{}, malformed(line, fmt.Sprintf("expected %d fields, got %d", perishableFields, len(fields)))
		}
	case TagNonPerishable:
		kind = product.KindNonPerishable
		if len(fields) != nonPerishableFields {
			return product.Product{}, malformed(line, fmt.Sprintf("expected %d fields, got %d", nonPerishableFields, len(fields)))
		}
	default:
		return product.Product{}, malformed(line, fmt.Sprintf("unknown product tag %q", fields[0]))
	}

	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return product.Product{}, malformedErr(line, "invalid id", err)
	}
	name := fields[2]
	price, err := decimal.NewFromString(fields[3])
	if err != nil {
		return product.Product{}, malformedErr(line, "invalid price", err)
	}
	r, err := parseRating(fields[4])
	if err != nil {
		return product.Product{}, malformedErr(line, "invalid rating", err)
	}

	if kind == product.KindNonPerishable {
		return product.NewNonPerishable(id, name, price, r), nil
	}

	bestBefore, err := time.Parse(dateLayout, fields[5])
	if err != nil {
		return product.Product{}, malformedErr(line, "invalid best-before date", err)
	}
	return product.NewPerishable(id, name, price, r, bestBefore), nil
}

// ParseReview parses one review record. The comment is everything after the first comma.
func ParseReview(line string) (review.Review, error) {
	fields := splitFields(line, reviewFields)
	if len(fields) != reviewFields {
		return review.Review{}, malformed(line, fmt.Sprintf("expected %d fields, got %d", reviewFields, len(fields)))
	}
	r, err := parseRating(fields[0])
	if err != nil {
		return review.Review{}, malformedErr(line, "invalid rating", err)
	}
	return review.NewReview(r, fields[1]), nil
}

func FormatProduct(p product.Product) string {
	fields := []string{
		TagOf(p.Kind()),
		strconv.Itoa(p.ID()),
		p.Name(),
		p.Price().String(),
		strconv.Itoa(p.Rating().Ordinal()),
	}
	if p.IsPerishable() {
		fields = append(fields, p.BestBefore(time.Time{}).Format(dateLayout))
	}
	return strings.Join(fields, separator+" ")
}

func FormatReview(r review.Review) string {
	return strconv.Itoa(r.Rating().Ordinal()) + separator + " " + r.Comment().String()
}

// CheckProduct fails when the product's name would not survive a FormatProduct and
// ParseProduct round trip: a separator or line break inside it, or surrounding spaces.
func CheckProduct(p product.Product) error {
	name := p.Name()
	if strings.ContainsAny(name, separator+lineBreaks) || strings.TrimSpace(name) != name {
		return malformed(name, fmt.Sprintf("product %d name cannot be stored", p.ID()))
	}
	return nil
}

// CheckReview fails when the comment holds a line break, which would split the record.
func CheckReview(r review.Review) error {
	if strings.ContainsAny(r.Comment().String(), lineBreaks) {
		return malformed(r.Comment().String(), "review comment cannot be stored")
	}
	return nil
}

// splitFields splits on commas and trims each field; n follows strings.SplitN.
func splitFields(line string, n int) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	fields := strings.SplitN(line, separator, n)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// parseRating accepts any integer; ordinals outside the scale become NotRated.
func parseRating(field string) (rating.Rating, error) {
	ordinal, err := strconv.Atoi(field)
	if err != nil {
		return rating.NotRated, err
	}
	return rating.Of(ordinal), nil
}

func malformed(line, reason string) error {
	return errs.Mark(errs.Newf("%s: %q", reason, line), errs.ErrMalformedRecord)
}

func malformedErr(line, reason string, err error) error {
	return errs.Mark(errs.Wrapf(err, "%s: %q", reason, line), errs.ErrMalformedRecord)
}
