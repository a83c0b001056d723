// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package conc

// RaceEnabled is true when the race detector is active.
// Used by stress tests to scale down iteration counts, since the
// detector's instrumentation makes the full op counts too slow to run
// on every CI invocation.
const RaceEnabled = true
