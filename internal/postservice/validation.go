package postservice

import (
	"regexp"

	"github.com/sushihentaime/kamelthinks/internal/common"
)

var (
	SlugRX = regexp.MustCompile("^[a-z0-9]+(?:-[a-z0-9]+)*$")
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must not be longer than 200 characters")
}

func validateSlug(v *common.Validator, slug string) {
	v.Check(slug != "", "slug", "must be provided")
	v.Check(v.CheckStringLength(slug, 1, 100), "slug", "must not be longer than 100 characters")
	v.Check(v.Matches(slug, SlugRX), "slug", "must only contain lowercase letters, numbers, and hyphens")
}

func validateMarkdown(v *common.Validator, markdown string) {
	v.Check(markdown != "", "markdown", "must be provided")
}
