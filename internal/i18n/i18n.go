// Package i18n translates user-facing messages. English and Korean are bundled.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: defaultMessages,
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Unknown locales and missing keys fall back to DefaultLocale, then to the key.
func (t *Translator) Translate(key, locale string) string {
	if msgs, ok := t.messages[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Translatef translates key and formats it with args.
func (t *Translator) Translatef(key, locale string, args ...interface{}) string {
	msg := t.Translate(key, locale)
	if msg == key || len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Supported reports whether locale has a message table.
func (t *Translator) Supported(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale extracts the locale from the Accept-Language header, e.g.
// "ko-KR,ko;q=0.9,en;q=0.8" yields "ko". Unsupported languages yield DefaultLocale.
func GetLocale(c *gin.Context) string {
	return ParseLocale(c.GetHeader(AcceptLanguageHeader))
}

// ParseLocale returns the first language of an Accept-Language value.
func ParseLocale(acceptLang string) string {
	if acceptLang == "" {
		return DefaultLocale
	}

	lang := strings.TrimSpace(strings.Split(strings.Split(acceptLang, ",")[0], ";")[0])
	if idx := strings.IndexAny(lang, "-_"); idx > 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(lang)
	if GetTranslator().Supported(lang) {
		return lang
	}
	return DefaultLocale
}

var defaultMessages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:     "Invalid request",
		ErrKeyInvalidRequestBody: "Invalid request body",
		ErrKeyInternalError:      "An unexpected error occurred",
		ErrKeyAPIKeyRequired:     "API key is required",
		ErrKeyInvalidAPIKey:      "Invalid API key",
		ErrKeyNotFound:           "Not found",
		ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
		ErrKeyTimeout:            "The request took too long",
		ErrKeyUnavailable:        "The container catalog database is not available",
		ErrKeyPayloadTooLarge:    "The uploaded file is too large",
		ErrKeyContainerNotFound:  "Unknown container %q",
		ErrKeyUnsupportedFormat:  "Unsupported export format %q",
		ErrKeyUnsupportedFile:    "Unsupported file %q, upload an .xlsx or .csv sheet",
		ErrKeyImportFailed:       "The uploaded sheet could not be read",

		validationPrefix + "container_invalid":     "Container dimensions must be positive",
		validationPrefix + "no_requests":           "Add at least one product",
		validationPrefix + "dimension_invalid":     "Product %d: carton length, width and height must be positive",
		validationPrefix + "count_invalid":         "Product %d: at least one carton is required",
		validationPrefix + "duplicate_name":        "Product %d: the name is already used by another product",
		validationPrefix + "too_many_placements":   "Too many cartons to simulate in one request",
		validationPrefix + "rotation_mode_invalid": "Unknown rotation mode",

		WarnKeyContainerFull: "%s: %d carton(s) do not fit, the container is full",
		WarnKeyOversized:     "%s: the carton is larger than the container in every allowed orientation, %d carton(s) not loaded",

		SuccessKeySimulationCompleted: "Simulation completed successfully",
		SuccessKeyContainerSaved:      "Container saved",
	},
	"ko": {
		ErrKeyInvalidRequest:     "잘못된 요청입니다",
		ErrKeyInvalidRequestBody: "요청 본문이 올바르지 않습니다",
		ErrKeyInternalError:      "예상치 못한 오류가 발생했습니다",
		ErrKeyAPIKeyRequired:     "API 키가 필요합니다",
		ErrKeyInvalidAPIKey:      "유효하지 않은 API 키입니다",
		ErrKeyNotFound:           "찾을 수 없습니다",
		ErrKeyRateLimitExceeded:  "요청이 너무 많습니다. 잠시 후 다시 시도하세요",
		ErrKeyTimeout:            "요청 처리 시간이 초과되었습니다",
		ErrKeyUnavailable:        "컨테이너 카탈로그 데이터베이스를 사용할 수 없습니다",
		ErrKeyPayloadTooLarge:    "업로드한 파일이 너무 큽니다",
		ErrKeyContainerNotFound:  "알 수 없는 컨테이너입니다: %q",
		ErrKeyUnsupportedFormat:  "지원하지 않는 내보내기 형식입니다: %q",
		ErrKeyUnsupportedFile:    "지원하지 않는 파일입니다: %q (.xlsx 또는 .csv 파일을 올려주세요)",
		ErrKeyImportFailed:       "업로드한 시트를 읽을 수 없습니다",

		validationPrefix + "container_invalid":     "컨테이너 치수는 0보다 커야 합니다",
		validationPrefix + "no_requests":           "제품을 하나 이상 입력하세요",
		validationPrefix + "dimension_invalid":     "제품 %d: 박스 가로, 세로, 높이는 0보다 커야 합니다",
		validationPrefix + "count_invalid":         "제품 %d: 박스 수량은 1 이상이어야 합니다",
		validationPrefix + "duplicate_name":        "제품 %d: 이미 사용 중인 제품명입니다",
		validationPrefix + "too_many_placements":   "한 번에 시뮬레이션할 수 있는 박스 수를 초과했습니다",
		validationPrefix + "rotation_mode_invalid": "알 수 없는 회전 모드입니다",

		WarnKeyContainerFull: "%s: 컨테이너가 가득 차서 %d 박스를 적재하지 못했습니다",
		WarnKeyOversized:     "%s: 박스가 컨테이너보다 커서 %d 박스를 적재하지 못했습니다",

		SuccessKeySimulationCompleted: "시뮬레이션이 완료되었습니다",
		SuccessKeyContainerSaved:      "컨테이너가 저장되었습니다",
	},
}
