// Package codec embeds notes into and extracts notes from image
// metadata.
//
// The package exposes one entry point, [CodecDispatcher], which routes
// buffers to the JPEG or PNG codec after verifying the format. Both
// codecs rewrite only the metadata slots this application owns and
// carry every foreign field through bit-exact: EXIF tags, GPS and
// thumbnail IFDs, XMP packets and PNG chunks written by cameras or
// other tools survive an embed untouched.
//
// Codecs operate on whole in-memory buffers. File handling lives in
// the store package; the service layer connects the two.
package codec
