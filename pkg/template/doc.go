// Package template renders template entries.
//
// Rendering is literal placeholder substitution, not a template language.
// The only placeholder is {{HOME}}, replaced with the home directory the
// Renderer was built with, or "~" when that is unknown:
//
//	export HOME={{HOME}}      ->  export HOME=/home/u
//	source {{HOME}}/.aliases  ->  source /home/u/.aliases
//
// Anything else, including other {{...}} sequences, is copied through byte
// for byte.
package template
