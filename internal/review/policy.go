package review

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Policy is the evaluation-rules text embedded in every prompt. It defines
// business logic (what the reviewer tolerates and what it rejects), so it
// is versioned configuration data, not a code constant.
type Policy struct {
	Name  string   `json:"name"`
	Rules []string `json:"rules"`
}

// Built-in policy variant names.
const (
	PolicyALBTLS = "alb-tls"
	PolicyStrict = "strict"
)

var sharedRules = []string{
	"Be concise",
	"Use bullet points",
	"Focus on AWS (ALB, ECS, VPC, IAM)",
	"Ignore Terrascan scan_errors",
	"Do NOT repeat raw JSON",
}

var builtinPolicies = map[string]Policy{
	PolicyALBTLS: {
		Name: PolicyALBTLS,
		Rules: append([]string{
			"Treat TLS termination at a load balancer (ALB) as acceptable",
			"Do NOT reject solely because internal hops behind the load balancer use plaintext HTTP",
			"Do NOT reject solely for missing observability (logging, tracing, metrics)",
		}, sharedRules...),
	},
	PolicyStrict: {
		Name: PolicyStrict,
		Rules: append([]string{
			"Require HTTPS end to end; any plaintext hop is grounds for rejection",
		}, sharedRules...),
	},
}

// BuiltinPolicy returns a built-in policy variant by name.
func BuiltinPolicy(name string) (Policy, error) {
	p, ok := builtinPolicies[name]
	if !ok {
		return Policy{}, fmt.Errorf("unknown policy: %s", name)
	}
	return p, nil
}

// LoadPolicy loads a policy pack from a JSON file.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading policy file: %w", err)
	}
	var p Policy
	if err := json.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parsing policy file: %w", err)
	}
	if len(p.Rules) == 0 {
		return Policy{}, fmt.Errorf("policy file %s has no rules", path)
	}
	return p, nil
}

// ResolvePolicy interprets a config value as either a built-in variant name
// or a path to a policy file.
func ResolvePolicy(nameOrPath string) (Policy, error) {
	if nameOrPath == "" {
		return builtinPolicies[PolicyALBTLS], nil
	}
	if p, err := BuiltinPolicy(nameOrPath); err == nil {
		return p, nil
	}
	return LoadPolicy(nameOrPath)
}

// PromptSection renders the policy rules as prompt instructions.
func (p Policy) PromptSection() string {
	if len(p.Rules) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nRules:\n")
	for _, rule := range p.Rules {
		fmt.Fprintf(&b, "- %s\n", rule)
	}
	return b.String()
}
