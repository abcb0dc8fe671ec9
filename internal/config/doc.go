// Package config provides the configuration for codemorph.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//  1. Built-in defaults (Default)
//  2. A TOML file (Load)
//  3. CODEMORPH_* environment variables (ApplyEnv)
//  4. Command line assignments (SetAll)
//
// Every setting has a dotted path such as "render.hold" that is shared by
// the TOML keys, the environment variable names and Set:
//
//	[render]
//	hold = 0.8
//	fps = 60
//
//	[transition]
//	duration = "600ms"
//	timing = "ease-in-out-cubic"
//	differ = "patience"
//
// Load does not validate; call Validate once all layers are applied.
package config
