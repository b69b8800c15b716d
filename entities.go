package excerpt

// ═══════════════════════════════════════════════════════════════════════════════
// CHARACTER → ENTITY TABLE
// ═══════════════════════════════════════════════════════════════════════════════
// The HTML-aware matcher must accept a character in any of the spellings a
// document may use for it: the literal, a named entity, or a numeric entity.
// The numeric forms are computed from the codepoint; the named forms come
// from this table.
//
// Example: the term "café" produces, for its final character, the fragment
//
//	(?:é|&eacute;|&#233;|&#xe9;)
//
// The table is a plain package-level map literal: initialized once at
// startup, read-only forever after, safe for concurrent readers.
// ═══════════════════════════════════════════════════════════════════════════════

// namedEntity returns the named-entity spelling for r (with '&' and ';'
// included) and whether one exists.
func namedEntity(r rune) (string, bool) {
	e, ok := char2entity[r]
	return e, ok
}

// char2entity maps characters to their HTML named entities. It covers the
// markup-significant ASCII characters, the full Latin-1 supplement, and the
// common typographic punctuation range.
var char2entity = map[rune]string{
	'"':      "&quot;",
	'&':      "&amp;",
	'\'':     "&apos;",
	'<':      "&lt;",
	'>':      "&gt;",
	'\u00a0': "&nbsp;",
	'¡': "&iexcl;",
	'¢': "&cent;",
	'£': "&pound;",
	'¤': "&curren;",
	'¥': "&yen;",
	'¦': "&brvbar;",
	'§': "&sect;",
	'¨': "&uml;",
	'©': "&copy;",
	'ª': "&ordf;",
	'«': "&laquo;",
	'¬': "&not;",
	'\u00ad': "&shy;",
	'®': "&reg;",
	'¯': "&macr;",
	'°': "&deg;",
	'±': "&plusmn;",
	'²': "&sup2;",
	'³': "&sup3;",
	'´': "&acute;",
	'µ': "&micro;",
	'¶': "&para;",
	'·': "&middot;",
	'¸': "&cedil;",
	'¹': "&sup1;",
	'º': "&ordm;",
	'»': "&raquo;",
	'¼': "&frac14;",
	'½': "&frac12;",
	'¾': "&frac34;",
	'¿': "&iquest;",
	'À': "&Agrave;",
	'Á': "&Aacute;",
	'Â': "&Acirc;",
	'Ã': "&Atilde;",
	'Ä': "&Auml;",
	'Å': "&Aring;",
	'Æ': "&AElig;",
	'Ç': "&Ccedil;",
	'È': "&Egrave;",
	'É': "&Eacute;",
	'Ê': "&Ecirc;",
	'Ë': "&Euml;",
	'Ì': "&Igrave;",
	'Í': "&Iacute;",
	'Î': "&Icirc;",
	'Ï': "&Iuml;",
	'Ð': "&ETH;",
	'Ñ': "&Ntilde;",
	'Ò': "&Ograve;",
	'Ó': "&Oacute;",
	'Ô': "&Ocirc;",
	'Õ': "&Otilde;",
	'Ö': "&Ouml;",
	'×': "&times;",
	'Ø': "&Oslash;",
	'Ù': "&Ugrave;",
	'Ú': "&Uacute;",
	'Û': "&Ucirc;",
	'Ü': "&Uuml;",
	'Ý': "&Yacute;",
	'Þ': "&THORN;",
	'ß': "&szlig;",
	'à': "&agrave;",
	'á': "&aacute;",
	'â': "&acirc;",
	'ã': "&atilde;",
	'ä': "&auml;",
	'å': "&aring;",
	'æ': "&aelig;",
	'ç': "&ccedil;",
	'è': "&egrave;",
	'é': "&eacute;",
	'ê': "&ecirc;",
	'ë': "&euml;",
	'ì': "&igrave;",
	'í': "&iacute;",
	'î': "&icirc;",
	'ï': "&iuml;",
	'ð': "&eth;",
	'ñ': "&ntilde;",
	'ò': "&ograve;",
	'ó': "&oacute;",
	'ô': "&ocirc;",
	'õ': "&otilde;",
	'ö': "&ouml;",
	'÷': "&divide;",
	'ø': "&oslash;",
	'ù': "&ugrave;",
	'ú': "&uacute;",
	'û': "&ucirc;",
	'ü': "&uuml;",
	'ý': "&yacute;",
	'þ': "&thorn;",
	'ÿ': "&yuml;",
	'–': "&ndash;",
	'—': "&mdash;",
	'‘': "&lsquo;",
	'’': "&rsquo;",
	'“': "&ldquo;",
	'”': "&rdquo;",
	'†': "&dagger;",
	'‡': "&Dagger;",
	'•': "&bull;",
	'…': "&hellip;",
	'€': "&euro;",
	'™': "&trade;",
}
