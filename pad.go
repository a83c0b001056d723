// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conc

// pad is cache line padding to prevent false sharing between hot
// atomic fields that different goroutines spin on independently
// (e.g. a stack's head and an elimination arena slot next to it).
type pad [64]byte
