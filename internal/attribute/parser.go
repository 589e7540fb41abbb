// Package attribute turns declarative test attributes such as
// "unit, updated=2024-05-01" into a validated Classification.
package attribute

import (
	"fmt"
	"strings"
	"time"

	"testkind/internal/aging"
	"testkind/internal/constants"
	"testkind/pkg/errors"
)

// Registry is the part of the configuration the parser consults.
type Registry interface {
	IsKindDefined(kind string) bool
	IsResourceKnown(resource string) bool
}

const formatHelp = `Invalid attribute format.
Must be one of:
 * unit, updated=YYYY-MM-DD
 * integration
 * <kind>, resources=<comma separated list of resources>`

// Parse classifies text. today bounds the latest accepted updated date and
// is never read from the clock here.
func Parse(text string, reg Registry, today time.Time) (Classification, error) {
	kind, options, hasOptions := splitAttribute(text)

	switch {
	case kind == constants.KindUnit && hasOptions:
		updated, err := parseUpdated(text, options, today)
		if err != nil {
			return nil, err
		}
		return Unit{Updated: updated}, nil

	case kind == constants.KindIntegration && !hasOptions:
		return Integration{}, nil

	case kind != "" && hasOptions:
		resources, err := parseResources(text, kind, options, reg)
		if err != nil {
			return nil, err
		}
		return Other{Name: kind, Resources: resources}, nil

	default:
		return nil, errors.ErrInvalidFormat.
			WithAttribute(text).
			WithMessage("%s", formatHelp)
	}
}

// splitAttribute splits on the first comma into at most two trimmed parts.
func splitAttribute(text string) (kind, options string, hasOptions bool) {
	kind, options, hasOptions = strings.Cut(text, ",")
	return strings.TrimSpace(kind), strings.TrimSpace(options), hasOptions
}

// option matches "<name>=<value>", tolerating blanks around '='.
func option(options, name string) (string, bool) {
	key, value, ok := strings.Cut(options, "=")
	if !ok || strings.TrimSpace(key) != name {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func parseUpdated(text, options string, today time.Time) (time.Time, error) {
	value, ok := option(options, constants.OptionUpdated)
	if !ok {
		return time.Time{}, errors.ErrInvalidOptions.
			WithAttribute(text).
			WithMessage("Invalid options for test kind 'unit': %s", options)
	}

	date, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, errors.ErrInvalidDateFormat.
			WithAttribute(text).
			WithCause(err).
			WithMessage("Invalid date format: %q, expected YYYY-MM-DD", value)
	}

	if date.Before(constants.MinUpdated) {
		return time.Time{}, errors.ErrDateTooEarly.
			WithAttribute(text).
			WithMessage("`updated=%s` must not be before 10 October 2023.", value)
	}

	maxDate := aging.Date(today).AddDate(0, 0, constants.MaxFutureDays)
	if date.After(maxDate) {
		return time.Time{}, errors.ErrDateTooLate.
			WithAttribute(text).
			WithMessage("`updated=%s` must not be more than %d days after the current date. Max date = %s.",
				value, constants.MaxFutureDays, maxDate.Format(constants.DateLayout))
	}

	return date, nil
}

func parseResources(text, kind, options string, reg Registry) ([]string, error) {
	if !reg.IsKindDefined(kind) {
		return nil, errors.ErrUndefinedKind.
			WithAttribute(text).
			WithMessage("Undefined Test Kind: %s", kind)
	}

	value, ok := option(options, constants.OptionResources)
	if !ok {
		return nil, errors.ErrInvalidOptions.
			WithAttribute(text).
			WithMessage("Invalid list of resources for test kind %s: %s", kind, options)
	}

	var resources []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			resources = append(resources, item)
		}
	}

	if len(resources) == 0 {
		return nil, errors.ErrEmptyResourceList.WithAttribute(text)
	}

	seen := make(map[string]struct{}, len(resources))
	for _, res := range resources {
		if _, dup := seen[res]; dup {
			return nil, errors.ErrDuplicateResource.
				WithAttribute(text).
				WithDetail("resource", res)
		}
		seen[res] = struct{}{}
	}

	var unknown []string
	for _, res := range resources {
		if !reg.IsResourceKnown(res) {
			unknown = append(unknown, res)
		}
	}
	if len(unknown) > 0 {
		return nil, errors.ErrUnknownResource.
			WithAttribute(text).
			WithDetail("resources", unknown).
			WithMessage("Unknown Resources: %s", fmt.Sprint(unknown))
	}

	return resources, nil
}
