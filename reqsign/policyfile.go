package reqsign

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// policyDoc is the YAML shape of a policy configuration document.
type policyDoc struct {
	Policies map[string]policyEntry `yaml:"policies"`
}

type policyEntry struct {
	Version      uint32   `yaml:"version"`
	ExtraHeaders []string `yaml:"extra_headers"`
	MaxBodyBytes uint64   `yaml:"max_body_bytes"`
	Algorithms   []string `yaml:"algorithms"`
}

// LoadPolicies reads named signing policies from a YAML document:
//
//	policies:
//	  sisu:
//	    version: 1
//	    extra_headers: [X-Custom]
//	    max_body_bytes: 8192
//	    algorithms: [ES256]
//
// An omitted max_body_bytes means NoBodyLimit and omitted algorithms
// default to ES256, matching the shape of the built-in presets. Every
// loaded policy is validated before being returned.
func LoadPolicies(r io.Reader) (map[string]Policy, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc policyDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	policies := make(map[string]Policy, len(doc.Policies))

	for name, entry := range doc.Policies {
		policy := Policy{
			Version:      entry.Version,
			ExtraHeaders: entry.ExtraHeaders,
			MaxBodyBytes: entry.MaxBodyBytes,
		}

		if policy.MaxBodyBytes == 0 {
			policy.MaxBodyBytes = NoBodyLimit
		}

		if len(entry.Algorithms) == 0 {
			policy.Algorithms = []Algorithm{ES256}
		} else {
			for _, a := range entry.Algorithms {
				policy.Algorithms = append(policy.Algorithms, Algorithm(a))
			}
		}

		if err := policy.Validate(); err != nil {
			return nil, fmt.Errorf("policy %q: %w", name, err)
		}

		policies[name] = policy
	}

	return policies, nil
}
