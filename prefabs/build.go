package prefabs

import (
	"fmt"

	"github.com/milk9111/platkit/trigger"
)

// BuildTrigger constructs a SurfaceTrigger from a spec, compiling each
// referenced rule script.
func BuildTrigger(spec *TriggerSpec) (*trigger.SurfaceTrigger, error) {
	if spec == nil {
		return nil, fmt.Errorf("prefabs: nil trigger spec")
	}
	t := trigger.NewSurfaceTrigger()
	t.TriggerFromChildren = spec.TriggerFromChildren
	for _, rule := range spec.Rules {
		src, err := LoadScript(rule.Script)
		if err != nil {
			return nil, fmt.Errorf("prefabs: trigger %s rule %s: %w", spec.Name, rule.Name, err)
		}
		switch rule.Kind {
		case "collision":
			compiled, err := trigger.CompileCollisionRule(src)
			if err != nil {
				return nil, fmt.Errorf("prefabs: trigger %s rule %s: %w", spec.Name, rule.Name, err)
			}
			t.CollisionRules = append(t.CollisionRules, compiled)
		case "surface":
			compiled, err := trigger.CompileSurfaceRule(src)
			if err != nil {
				return nil, fmt.Errorf("prefabs: trigger %s rule %s: %w", spec.Name, rule.Name, err)
			}
			t.SurfaceRules = append(t.SurfaceRules, compiled)
		default:
			return nil, fmt.Errorf("prefabs: trigger %s rule %s: unknown kind %q", spec.Name, rule.Name, rule.Kind)
		}
	}
	return t, nil
}
