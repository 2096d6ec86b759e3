package vcf

import (
	"fmt"
	"strings"
)

// OtherKey is the sentinel key the tokenizer stores a bare payload under,
// for header lines whose payload is a single value rather than a key=value
// list (##fileDate=20100501, ##assembly=ftp://...).
const OtherKey = "Value"

// Tokenizer states for parsePayload.
type payloadState int

const (
	// expecting to read a key, terminated by `=`
	stateKey payloadState = iota

	// expecting to read a value, terminated by `,` or end of input
	stateValue

	// inside a value enclosed by `"..."` or `[...]`
	stateEnclosed

	// a closing quote or bracket was read; only `,` or end of input may follow
	stateQuoteEnded
)

// parsePayload tokenizes the payload of a header line into ordered key/value
// pairs. Example payloads:
//
//	<ID=GT,Number=1,Type=String,Description="Genotype">
//	<ID=Assay,Type=String,Number=.,Values=[WholeGenome, Exome]>
//	20100501
//	ftp://ftp-trace.ncbi.nih.gov/1000genomes
//
// Quoted values keep their backslash escapes verbatim; an escaped `\"` does
// not terminate the value. Duplicate keys overwrite earlier ones (last write
// wins), a deliberate simplification.
func parsePayload(payload string) (*Fields, error) {
	// Angle brackets must be balanced: either both present or neither.
	if len(payload) > 0 && (payload[0] == '<' || payload[len(payload)-1] == '>') {
		if payload[0] != '<' || payload[len(payload)-1] != '>' {
			return nil, fmt.Errorf("invalid header payload %q (unbalanced angle brackets)", payload)
		}
		payload = payload[1 : len(payload)-1]
	}

	if payload == "" {
		return nil, fmt.Errorf("invalid header payload (empty)")
	}

	fields := NewFields()

	// A payload without any key=value structure is a single bare value.
	if !strings.Contains(payload, "=") {
		fields.Set(OtherKey, payload)
		return fields, nil
	}

	var (
		state      = stateKey
		keyStart   int
		keyEnd     int
		valueStart int
		enclosing  byte
		prev       byte
	)

	store := func(key, value string) error {
		if key == "" {
			return fmt.Errorf("invalid header payload %q (empty key)", payload)
		}
		if value == "" {
			return fmt.Errorf("invalid header payload %q (empty value)", payload)
		}
		fields.Set(key, value)
		return nil
	}

	for i := 0; i < len(payload); i++ {
		ch := payload[i]
		switch state {
		case stateKey:
			if ch == '=' {
				keyEnd = i
				valueStart = i + 1
				state = stateValue
			}

		case stateValue:
			switch {
			case ch == ',' || i == len(payload)-1:
				value := payload[valueStart:]
				if ch == ',' {
					value = payload[valueStart:i]
				}
				if err := store(payload[keyStart:keyEnd], value); err != nil {
					return nil, err
				}
				keyStart = i + 1
				state = stateKey
			case ch == '"' || ch == '[':
				// Quotes and brackets may only open a value.
				if i != valueStart {
					return nil, fmt.Errorf("invalid header payload %q (unexpected %q inside a value)", payload, string(ch))
				}
				valueStart = i + 1
				enclosing = ch
				prev = 0
				state = stateEnclosed
			}

		case stateEnclosed:
			closes := (enclosing == '"' && ch == '"' && prev != '\\') ||
				(enclosing == '[' && ch == ']')
			if closes {
				if err := store(payload[keyStart:keyEnd], payload[valueStart:i]); err != nil {
					return nil, err
				}
				state = stateQuoteEnded
				continue
			}
			// A doubled backslash escapes itself, so the next quote closes.
			if ch == '\\' && prev == '\\' {
				prev = 0
			} else {
				prev = ch
			}

		case stateQuoteEnded:
			if ch != ',' {
				return nil, fmt.Errorf("invalid header payload %q (unexpected %q after closing quote)", payload, string(ch))
			}
			keyStart = i + 1
			state = stateKey
		}
	}

	switch state {
	case stateValue:
		// Only reachable when the input ends right after `=`.
		return nil, fmt.Errorf("invalid header payload %q (empty value)", payload)
	case stateEnclosed:
		return nil, fmt.Errorf("invalid header payload %q (unbalanced quote)", payload)
	}

	return fields, nil
}
