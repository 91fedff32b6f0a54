package validation

import (
	"net/url"
	"strings"
)

// imageExtensions 이미지 URL로 인정하는 확장자 목록입니다.
// 콘텐츠 타입을 조회하지 않고 문자열 포함 여부만 확인합니다.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// IsHTTPURL rawURL이 http 또는 https 스키마의 절대 URL이면 true를 반환합니다.
func IsHTTPURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return u.Host != ""
}

// IsImageURL rawURL이 유효한 HTTP URL이면서 이미지 확장자를 포함하면 true를 반환합니다.
// 확장자는 경로뿐 아니라 쿼리 문자열에 있어도 인정합니다 (예: "...?file=a.JPG").
func IsImageURL(rawURL string) bool {
	if !IsHTTPURL(rawURL) {
		return false
	}

	lower := strings.ToLower(rawURL)
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}
