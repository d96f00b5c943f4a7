package script

import "fmt"

// ConvertFunc normalizes a raw script timecode into the document's declared
// representation. The formatted string goes into the entry verbatim; the
// millisecond position drives the overlap verifier. The frame rate and
// separator policy live entirely inside the function, never in the builder.
type ConvertFunc func(raw string) (formatted string, millis int64, err error)

// BuildEntries emits one entry per region in anchor sequence order. Entries
// are never reordered or merged after this step. Regions whose classified
// content has no narration are kept unless the configuration demands
// narration, and even then the omission is reported as a diagnostic, never
// silent.
func BuildEntries(regions []Region, cfg Config, conv ConvertFunc) ([]Entry, []Diagnostic, error) {
	if conv == nil {
		return nil, nil, ErrNoConverter
	}

	var diags []Diagnostic
	entries := make([]Entry, 0, len(regions))
	for _, region := range regions {
		content := Classify(region, cfg)
		if cfg.RequireNarration && content.Narration == "" {
			diags = append(diags, Diagnostic{
				Kind: DiagDroppedNoNarration,
				Page: region.Anchor.Page,
				Y:    region.Anchor.Y,
				Text: region.Anchor.Raw,
			})
			continue
		}

		formatted, millis, err := conv(region.Anchor.Raw)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to convert timecode %q: %w", region.Anchor.Raw, err)
		}

		narration := content.Narration
		if cfg.InlineInstructions && content.Instruction != "" {
			narration = collapse(cfg.OpenBracket + content.Instruction + cfg.CloseBracket + " " + narration)
		}

		entries = append(entries, Entry{
			Seq:         len(entries),
			Raw:         region.Anchor.Raw,
			Timecode:    formatted,
			StartMillis: millis,
			Instruction: content.Instruction,
			Narration:   narration,
		})
	}
	return entries, diags, nil
}
