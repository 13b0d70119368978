package sentiment

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Aspect is a topical category and the phrases that mention it.
type Aspect struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// SentimentLexicon holds the polarity and negation phrase sets.
type SentimentLexicon struct {
	Positive     []string `yaml:"positive"`
	Negative     []string `yaml:"negative"`
	SoftNegation []string `yaml:"soft_negation"`
	HardNegation []string `yaml:"hard_negation"`
	Neutral      []string `yaml:"neutral"`
}

// Lexicon is the full vocabulary the engine is compiled from.
// Aspect order is kept for explain output; ratings themselves are order-independent.
type Lexicon struct {
	Aspects   []Aspect         `yaml:"aspects"`
	Sentiment SentimentLexicon `yaml:"sentiment"`
}

// DefaultLexicon returns the built-in Indonesian hotel vocabulary.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Aspects: []Aspect{
			{Name: "Fasilitas", Keywords: []string{"fasilitas", "lokasi", "kamar", "kamar mandi", "ac", "tv", "wifi", "kolam renang", "parkir", "transportasi", "restoran", "makanan", "menu", "sarapan", "lengkap"}},
			{Name: "Staf", Keywords: []string{"staff", "staf", "pelayanan", "karyawan", "resepsionis", "petugas", "ramah", "sopan", "membantu", "gercep", "sigap", "respon", "lambat", "jutek", "layanan"}},
			{Name: "Kebersihan", Keywords: []string{"bersih", "kebersihan", "rapi", "wangi", "nyaman", "kotor", "bau", "debu", "sprei", "handuk", "tidak ada kotoran"}},
		},
		Sentiment: SentimentLexicon{
			Positive:     []string{"bagus", "baik", "keren", "puas", "memuaskan", "strategis", "luas", "lengkap", "ramah", "sopan", "membantu", "cepat", "gercep", "sigap", "bersih", "rapi", "wangi", "nyaman", "enak", "lezat", "sempurna", "luar biasa"},
			Negative:     []string{"buruk", "jelek", "kecewa", "kotor", "bau", "berdebu", "berisik", "lama", "lambat", "jutek", "tidak ramah", "rusak", "aneh", "mahal", "enggak puas"},
			SoftNegation: []string{"kurang"},
			HardNegation: []string{"tidak"},
			Neutral:      []string{"cukup", "standar", "biasa", "lumayan", "sesuai", "saja", "oke", "agak"},
		},
	}
}

// LoadLexicon reads a YAML vocabulary file. An empty path yields DefaultLexicon.
//
// Expected format:
//
//	aspects:
//	  - name: Fasilitas
//	    keywords: [kamar, wifi]
//	sentiment:
//	  positive: [bagus]
//	  negative: [buruk]
//	  soft_negation: [kurang]
//	  hard_negation: [tidak]
//	  neutral: [cukup]
func LoadLexicon(path string) (Lexicon, error) {
	if path == "" {
		return DefaultLexicon(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	lex = lex.normalized()
	if err := lex.Validate(); err != nil {
		return Lexicon{}, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// normalized returns a copy with lowercased, trimmed phrases.
// Review text is lowercased before matching, so phrases must be too.
func (l Lexicon) normalized() Lexicon {
	out := Lexicon{Aspects: make([]Aspect, len(l.Aspects))}
	for i, a := range l.Aspects {
		out.Aspects[i] = Aspect{Name: strings.TrimSpace(a.Name), Keywords: normPhrases(a.Keywords)}
	}
	out.Sentiment = SentimentLexicon{
		Positive:     normPhrases(l.Sentiment.Positive),
		Negative:     normPhrases(l.Sentiment.Negative),
		SoftNegation: normPhrases(l.Sentiment.SoftNegation),
		HardNegation: normPhrases(l.Sentiment.HardNegation),
		Neutral:      normPhrases(l.Sentiment.Neutral),
	}
	return out
}

func normPhrases(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, p := range in {
		out[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return out
}

// Validate reports the first structural problem in the vocabulary.
// An empty phrase is rejected because it is a substring of every clause.
func (l Lexicon) Validate() error {
	if len(l.Aspects) == 0 {
		return errors.New("no aspects defined")
	}
	seen := make(map[string]struct{}, len(l.Aspects))
	for _, a := range l.Aspects {
		if a.Name == "" {
			return errors.New("aspect with empty name")
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("duplicate aspect %q", a.Name)
		}
		seen[a.Name] = struct{}{}
		if len(a.Keywords) == 0 {
			return fmt.Errorf("aspect %q has no keywords", a.Name)
		}
		if err := noEmpty("aspect "+a.Name, a.Keywords); err != nil {
			return err
		}
	}
	s := l.Sentiment
	if len(s.Positive) == 0 {
		return errors.New("positive lexicon is empty")
	}
	if len(s.Negative) == 0 {
		return errors.New("negative lexicon is empty")
	}
	for name, set := range map[string][]string{
		"positive":      s.Positive,
		"negative":      s.Negative,
		"soft_negation": s.SoftNegation,
		"hard_negation": s.HardNegation,
		"neutral":       s.Neutral,
	} {
		if err := noEmpty(name, set); err != nil {
			return err
		}
	}
	return nil
}

func noEmpty(set string, phrases []string) error {
	for _, p := range phrases {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%s: empty phrase", set)
		}
	}
	return nil
}

// Fingerprint is a short stable hash of the vocabulary, used to version cache keys.
func (l Lexicon) Fingerprint() string {
	h := sha1.New()
	write := func(tag string, phrases []string) {
		h.Write([]byte(tag))
		h.Write([]byte{0})
		for _, p := range phrases {
			h.Write([]byte(p))
			h.Write([]byte{0})
		}
		h.Write([]byte{1})
	}
	for _, a := range l.Aspects {
		write("aspect:"+a.Name, a.Keywords)
	}
	write("positive", l.Sentiment.Positive)
	write("negative", l.Sentiment.Negative)
	write("soft_negation", l.Sentiment.SoftNegation)
	write("hard_negation", l.Sentiment.HardNegation)
	write("neutral", l.Sentiment.Neutral)
	return hex.EncodeToString(h.Sum(nil))[:12]
}
