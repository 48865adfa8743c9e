// Package audit generates the per-track production audit of an AOI.
//
// Where the enumeration report compares date pairs, the audit follows each
// acquisition list through the pipeline: are its scenes localized, was its
// ifg-cfg generated, was its ifg generated. Acquisition ids are translated to
// scene ids through the track's acquisitions before keys are compared.
//
// The workbook carries the per-list status, the missing scenes with the
// acquisition that produced them, the expected date pairs, a listing of every
// collection and a dump of the audit-trail metadata.
package audit
