package cel

// RuleExpressionExamples are accepted values for TEST_KIND_EXCLUDE_WHEN.
var RuleExpressionExamples = map[string]string{
	"by_kind":           `kind == "end2end"`,
	"by_category":       `category == "other"`,
	"needs_resource":    `"postgres" in resources`,
	"any_of_resources":  `resources.exists(r, r in ["kafka", "redis"])`,
	"many_resources":    `size(resources) > 2`,
	"kind_prefix":       `kind.startsWith("ext-")`,
	"combined":          `category == "other" && !("local" in resources)`,
	"everything_but_ut": `category != "unit"`,
}
