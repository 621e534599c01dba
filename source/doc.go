// Package source provides content sources: per-page suppliers of
// positioned spans, images, and fill rectangles for the reconstruction
// engine.
//
// The PDF source is best-effort. Text runs carry position, font name and
// size, with bold and italic inferred from the font name; vector fills
// feed the advisory header-background signal. Image extraction is limited
// to flate-compressed 8-bit RGB and grayscale XObjects, which are
// re-encoded as PNG; images the source cannot decode are skipped and
// logged, never fatal. Because the underlying parser exposes no placement
// transform for XObjects, images are ordered at the end of their page.
package source
