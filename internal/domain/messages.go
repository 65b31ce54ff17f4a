package domain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Messages is the user-visible text of the widget for one language
type Messages struct {
	Title           string `yaml:"title" json:"title"`
	Placeholder     string `yaml:"placeholder" json:"placeholder"`
	FeelsLike       string `yaml:"feels_like" json:"feels_like"`
	Humidity        string `yaml:"humidity" json:"humidity"`
	Wind            string `yaml:"wind" json:"wind"`
	EmptyCity       string `yaml:"empty_city" json:"empty_city"`
	NotFound        string `yaml:"not_found" json:"not_found"`
	Unauthorized    string `yaml:"unauthorized" json:"unauthorized"`
	UpstreamPrefix  string `yaml:"upstream_prefix" json:"upstream_prefix"`
	UpstreamUnknown string `yaml:"upstream_unknown" json:"upstream_unknown"`
	Network         string `yaml:"network" json:"network"`
}

var builtinMessages = map[string]Messages{
	"ko": {
		Title:           "날씨 앱",
		Placeholder:     "도시 이름을 입력하세요",
		FeelsLike:       "체감 온도",
		Humidity:        "습도",
		Wind:            "풍속",
		EmptyCity:       "도시 이름을 입력하세요.",
		NotFound:        "도시를 찾을 수 없습니다.",
		Unauthorized:    "API 키가 유효하지 않습니다.",
		UpstreamPrefix:  "에러가 발생했습니다: ",
		UpstreamUnknown: "알 수 없는 에러",
		Network:         "날씨 정보를 가져오는 중 문제가 발생했습니다.",
	},
	"en": {
		Title:           "Weather",
		Placeholder:     "Enter a city name",
		FeelsLike:       "Feels like",
		Humidity:        "Humidity",
		Wind:            "Wind",
		EmptyCity:       "Please enter a city name.",
		NotFound:        "City not found.",
		Unauthorized:    "The API key is invalid.",
		UpstreamPrefix:  "An error occurred: ",
		UpstreamUnknown: "unknown error",
		Network:         "There was a problem fetching the weather.",
	},
}

// DefaultLanguage is used when the requested language has no catalog
const DefaultLanguage = "ko"

// DefaultMessages returns the built-in catalog for lang, falling back to Korean
func DefaultMessages(lang string) Messages {
	if m, ok := builtinMessages[lang]; ok {
		return m
	}
	return builtinMessages[DefaultLanguage]
}

// ParseMessages reads a YAML document keyed by language and overlays the
// entry for lang on the built-in catalog. Missing keys keep their defaults.
func ParseMessages(data []byte, lang string) (Messages, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Messages{}, fmt.Errorf("messages: failed to parse catalog: %w", err)
	}

	m := DefaultMessages(lang)
	node, ok := doc[lang]
	if !ok {
		return m, nil
	}
	if err := node.Decode(&m); err != nil {
		return Messages{}, fmt.Errorf("messages: failed to decode %q entry: %w", lang, err)
	}
	return m, nil
}

// LoadMessages returns the catalog for lang, applying the overrides in path
// when one is given
func LoadMessages(path, lang string) (Messages, error) {
	if path == "" {
		return DefaultMessages(lang), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Messages{}, fmt.Errorf("messages: failed to read %s: %w", path, err)
	}
	return ParseMessages(data, lang)
}

// For returns the fixed user-visible message for a lookup error
func (m Messages) For(err error) string {
	switch KindOf(err) {
	case KindNone:
		return ""
	case KindEmptyCity:
		return m.EmptyCity
	case KindNotFound:
		return m.NotFound
	case KindUnauthorized:
		return m.Unauthorized
	case KindUpstreamError:
		detail := m.UpstreamUnknown
		if msg := upstreamMessage(err); msg != "" {
			detail = msg
		}
		return m.UpstreamPrefix + detail
	default:
		return m.Network
	}
}
