// Package report turns finished run statistics into the JSON artifact, the
// console summary and the run history entry.
//
// The artifact is reporte_jerarquico_<timestamp>.json in the reports
// directory. Its keys (timestamp, modo, archivos_procesados,
// archivos_movidos, errores, por_subcategoria) are read by external charting
// tools and must not change; further keys are only ever added, such as the
// per-category totals under por_categoria.
//
// Emitting never fails a run. Persistence problems are logged and the
// reporter falls back to console output alone.
package report
