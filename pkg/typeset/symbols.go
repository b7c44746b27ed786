// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package typeset

// symbolOperators maps source characters to the operator drawn for them.
var symbolOperators = map[string]string{
	"-": "−",
	"*": "∗",
	"'": "′",
}

// macroIdentifiers are macros rendered as identifiers (<mi>).
var macroIdentifiers = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ϵ", "varepsilon": "ε",
	"zeta": "ζ", "eta": "η", "theta": "θ", "vartheta": "ϑ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "omicron": "ο", "pi": "π", "varpi": "ϖ",
	"rho": "ρ", "varrho": "ϱ", "sigma": "σ", "varsigma": "ς", "tau": "τ", "upsilon": "υ",
	"phi": "ϕ", "varphi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",
	"Alpha": "A", "Beta": "B", "Gamma": "Γ", "Delta": "Δ", "Epsilon": "E", "Zeta": "Z", "Eta": "H",
	"Theta": "Θ", "Iota": "I", "Kappa": "K", "Lambda": "Λ", "Mu": "M", "Nu": "N", "Xi": "Ξ",
	"Omicron": "O", "Pi": "Π", "Rho": "P", "Sigma": "Σ", "Tau": "T", "Upsilon": "Υ", "Phi": "Φ",
	"Chi": "X", "Psi": "Ψ", "Omega": "Ω",
	"infty": "∞", "partial": "∂", "nabla": "∇", "hbar": "ℏ", "emptyset": "∅", "aleph": "ℵ",
	"ell": "ℓ", "Re": "ℜ", "Im": "ℑ",
}

// macroOperators are macros rendered as operators (<mo>).
var macroOperators = map[string]string{
	// Binary operators.
	"cdot": "⋅", "times": "×", "div": "÷", "pm": "±", "mp": "∓", "ast": "∗", "star": "⋆",
	"circ": "∘", "bullet": "∙", "cap": "∩", "cup": "∪", "vee": "∨", "wedge": "∧", "oplus": "⊕",
	"ominus": "⊖", "otimes": "⊗", "oslash": "⊘", "odot": "⊙", "setminus": "∖", "amalg": "⨿",
	"dagger": "†", "ddagger": "‡", "diamond": "⋄", "uplus": "⊎", "sqcap": "⊓", "sqcup": "⊔",

	// Relations.
	"leq": "≤", "geq": "≥", "neq": "≠", "ne": "≠", "approx": "≈", "equiv": "≡", "sim": "∼",
	"simeq": "≃", "cong": "≅", "propto": "∝", "in": "∈", "ni": "∋", "subset": "⊂",
	"subseteq": "⊆", "supset": "⊃", "supseteq": "⊇", "ll": "≪", "gg": "≫", "perp": "⊥",
	"mid": "∣", "parallel": "∥", "doteq": "≐", "asymp": "≍", "prec": "≺", "succ": "≻",
	"preceq": "⪯", "succeq": "⪰", "models": "⊨", "vdash": "⊢", "dashv": "⊣",

	// Arrows.
	"to": "→", "rightarrow": "→", "leftarrow": "←", "leftrightarrow": "↔", "Rightarrow": "⇒",
	"Leftarrow": "⇐", "Leftrightarrow": "⇔", "mapsto": "↦", "uparrow": "↑", "downarrow": "↓",
	"longrightarrow": "⟶", "longleftarrow": "⟵", "Longrightarrow": "⟹", "Longleftarrow": "⟸",
	"longmapsto": "⟼", "nearrow": "↗", "searrow": "↘", "swarrow": "↙", "nwarrow": "↖",

	// Large operators.
	"sum": "∑", "prod": "∏", "coprod": "∐", "int": "∫", "oint": "∮", "bigcup": "⋃",
	"bigcap": "⋂", "bigvee": "⋁", "bigwedge": "⋀", "bigoplus": "⨁", "bigotimes": "⨂",

	// Delimiters and punctuation.
	"{": "{", "}": "}", "(": "(", ")": ")", "langle": "⟨", "rangle": "⟩", "lceil": "⌈",
	"rceil": "⌉", "lfloor": "⌊", "rfloor": "⌋", "vert": "|", "Vert": "‖", "backslash": "\\",
	"ldots": "…", "cdots": "⋯", "vdots": "⋮", "ddots": "⋱", "dots": "…", "ldotp": ".", "cdotp": "⋅",

	// Logic.
	"forall": "∀", "exists": "∃", "neg": "¬", "angle": "∠", "prime": "′",
}

// functionNames are macros rendered as upright function names.
var functionNames = map[string]bool{
	"arccos": true, "arcsin": true, "arctan": true, "arg": true, "cos": true, "cosh": true,
	"cot": true, "coth": true, "csc": true, "deg": true, "det": true, "dim": true, "exp": true,
	"gcd": true, "hom": true, "inf": true, "ker": true, "lg": true, "lim": true, "liminf": true,
	"limsup": true, "ln": true, "log": true, "max": true, "min": true, "Pr": true, "sec": true,
	"sin": true, "sinh": true, "sup": true, "tan": true, "tanh": true,
}

// mathVariants maps the math font macros to MathML math variants.
var mathVariants = map[string]string{
	"mathbf":      "bold",
	"mathit":      "italic",
	"mathsf":      "sans-serif",
	"mathtt":      "monospace",
	"mathcal":     "script",
	"mathscr":     "script",
	"mathbb":      "double-struck",
	"mathfrak":    "fraktur",
	"mathdefault": "normal",
	"mathregular": "normal",
}

// spaces maps the spacing macros to their width.
var spaces = map[string]string{
	",":     "0.1667em",
	":":     "0.2222em",
	";":     "0.2778em",
	"!":     "-0.1667em",
	"quad":  "1em",
	"qquad": "2em",
}

// fontSwitches change the font of what follows. They are ignored.
var fontSwitches = map[string]bool{
	"rm": true, "cal": true, "it": true, "tt": true, "sf": true, "bf": true, "default": true,
	"bb": true, "frak": true, "scr": true, "regular": true,
}
