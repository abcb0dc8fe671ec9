// Package lua runs user scripts in a sandboxed gopher-lua state.
//
// Scripts customize playback. A timing script defines a global ease(t)
// mapping linear progress in [0, 1] to eased progress:
//
//	-- smoothstep
//	function ease(t)
//	  return t * t * (3 - 2 * t)
//	end
//
// Scripts may only compute. The io, os, debug and package libraries are
// not opened, the file and string loaders are removed, and require returns
// only string, table and math. Every execution is bounded by a timeout.
package lua
