package content

import (
	"github.com/senghongH/devdocs/pkg/components"
)

// JSTips is the JavaScript tip collection. These tips are code-only; no
// rendered previews ship with them.
var JSTips = TipSet{
	ID:    "js-tips",
	Title: "JS Tips",
	Slug:  "nodejs/tips",
	Lang:  "javascript",
	Tips:  jsTips,
}

var jsTips = []components.Tip{
	{
		Title:       "Swap variables with destructuring",
		Description: "Array destructuring swaps two bindings without a temporary variable.",
		Code: `let a = 1, b = 2;
[a, b] = [b, a];`,
	},
	{
		Title:       "Default values with nullish coalescing",
		Description: "The ?? operator falls back only on null and undefined, unlike || which also rejects 0, '' and false.",
		Code: `const port = config.port ?? 3000;
const retries = options.retries ?? 5;`,
	},
	{
		Title:       "Deduplicate an array with Set",
		Description: "Spreading a Set built from an array drops duplicate values while preserving first-seen order.",
		Code: `const unique = [...new Set([1, 2, 2, 3, 1])];
// [1, 2, 3]`,
	},
	{
		Title:       "Safe deep access with optional chaining",
		Description: "The ?. operator short-circuits to undefined instead of throwing when an intermediate value is missing.",
		Code: `const city = user?.address?.city;
const first = items?.[0];`,
	},
	{
		Title:       "Group array items with Object.groupBy",
		Description: "Object.groupBy partitions an array into an object keyed by the callback's return value.",
		Code: `const byLevel = Object.groupBy(logs, log => log.level);
// { info: [...], error: [...] }`,
	},
	{
		Title:       "Time a block with console.time",
		Description: "Matching console.time and console.timeEnd calls print the elapsed time under a shared label, with no date arithmetic.",
		Code: `console.time('parse');
parseLargeFile(input);
console.timeEnd('parse');`,
	},
}
