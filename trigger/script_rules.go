package trigger

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/platkit/scene"
)

func nodeName(n *scene.Node) string {
	if n == nil {
		return ""
	}
	return n.Name
}

// Rule scripts see the probe as plain globals and assign the boolean
// `allow` to accept or reject the hit:
//
//	allow := normal_y < -0.5 && distance < 8
//
// Surface-rule scripts additionally see the controller's recorded surface
// names as `primary` and `secondary`.
const scriptResultVar = "allow"

var ruleScriptGlobals = []string{
	"normal_x", "normal_y",
	"point_x", "point_y",
	"distance",
	"surface",
	"primary", "secondary",
}

// CompileCollisionRule compiles a tengo source into a CollisionRule.
func CompileCollisionRule(src []byte) (CollisionRule, error) {
	compiled, err := compileRuleScript(src)
	if err != nil {
		return nil, err
	}
	return func(hit TerrainCastHit) bool {
		return runRuleScript(compiled, nil, hit)
	}, nil
}

// CompileSurfaceRule compiles a tengo source into a SurfaceRule.
func CompileSurfaceRule(src []byte) (SurfaceRule, error) {
	compiled, err := compileRuleScript(src)
	if err != nil {
		return nil, err
	}
	return func(c Controller, hit TerrainCastHit) bool {
		return runRuleScript(compiled, c, hit)
	}, nil
}

func compileRuleScript(src []byte) (*tengo.Compiled, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("trigger: empty rule script")
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))
	for _, name := range ruleScriptGlobals {
		if err := script.Add(name, nil); err != nil {
			return nil, fmt.Errorf("trigger: add script global %s: %w", name, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("trigger: compile rule script: %w", err)
	}
	return compiled, nil
}

func runRuleScript(compiled *tengo.Compiled, c Controller, hit TerrainCastHit) bool {
	if compiled == nil {
		return false
	}
	run := compiled.Clone()
	vars := map[string]interface{}{
		"normal_x":  hit.Normal.X,
		"normal_y":  hit.Normal.Y,
		"point_x":   hit.Point.X,
		"point_y":   hit.Point.Y,
		"distance":  hit.Distance,
		"surface":   nodeName(hit.Surface),
		"primary":   "",
		"secondary": "",
	}
	if c != nil {
		vars["primary"] = nodeName(c.PrimarySurface())
		vars["secondary"] = nodeName(c.SecondarySurface())
	}
	for name, v := range vars {
		if err := run.Set(name, v); err != nil {
			log.Printf("trigger: set script global %s: %v", name, err)
			return false
		}
	}
	if err := run.Run(); err != nil {
		log.Printf("trigger: rule script: %v", err)
		return false
	}
	result := run.Get(scriptResultVar)
	if result == nil || result.IsUndefined() {
		return false
	}
	return result.Bool()
}
