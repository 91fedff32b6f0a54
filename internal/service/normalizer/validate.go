package normalizer

import (
	"unicode/utf8"

	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/darkkaiser/feed-server/pkg/validation"
)

const minDescriptionLength = 10

// 검증 메시지는 API 응답과 피드 처리 결과에 그대로 노출됩니다.
const (
	errMissingID           = "Missing product ID"
	errMissingName         = "Missing product name"
	errInvalidPrice        = "Invalid price"
	errInvalidURL          = "Invalid product URL"
	errInvalidAffiliateURL = "Invalid affiliate URL"

	warnMissingImage      = "Missing primary image"
	warnInvalidImage      = "Invalid primary image URL"
	warnShortDescription  = "Description too short or missing"
	warnMissingBrand      = "Missing brand information"
	warnMissingCategories = "No categories assigned"
)

// validateProduct 필수 항목 오류와 품질 경고를 반환합니다.
func validateProduct(p *contract.Product) (errs, warnings []string) {
	if p.ID == "" {
		errs = append(errs, errMissingID)
	}
	if p.Name == "" {
		errs = append(errs, errMissingName)
	}
	if p.Price.Current <= 0 {
		errs = append(errs, errInvalidPrice)
	}
	if !validation.IsHTTPURL(p.URL) {
		errs = append(errs, errInvalidURL)
	}
	if !validation.IsHTTPURL(p.AffiliateURL) {
		errs = append(errs, errInvalidAffiliateURL)
	}

	switch {
	case p.Images.Primary == "":
		warnings = append(warnings, warnMissingImage)
	case !validation.IsImageURL(p.Images.Primary):
		warnings = append(warnings, warnInvalidImage)
	}
	if utf8.RuneCountInString(p.Description) < minDescriptionLength {
		warnings = append(warnings, warnShortDescription)
	}
	if p.Brand == "" {
		warnings = append(warnings, warnMissingBrand)
	}
	if len(p.Categories) == 0 {
		warnings = append(warnings, warnMissingCategories)
	}

	return errs, warnings
}

// validatedFlags 필드별 검증 결과를 기록합니다.
func validatedFlags(p *contract.Product) contract.Validated {
	return contract.Validated{
		Price:         p.Price.Current > 0,
		URL:           validation.IsHTTPURL(p.URL),
		AffiliateURL:  validation.IsHTTPURL(p.AffiliateURL),
		Images:        validation.IsImageURL(p.Images.Primary),
		LastValidated: p.Metadata.LastUpdated,
	}
}
