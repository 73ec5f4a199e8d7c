// Package fuzztests houses Go fuzz harnesses for the parts of orbit that
// consume untrusted text: pragma scanning, symbol mangling and the arith
// evaluator. The goal is to catch panics and broken invariants on arbitrary
// inputs.
//
// Назначение: запускать fuzz-обработчики поверх сканера прагм, соглашений о
// вызовах и вычислителя выражений.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/driver, internal/session, internal/ast/arith,
// internal/testkit.
package fuzztests
