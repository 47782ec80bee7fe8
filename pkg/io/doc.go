// Package io reads and writes purchase order documents.
//
// # Formats
//
// A document file holds one [document.Document] with three top-level keys
// and an optional print time. The same layout works in JSON, YAML and TOML;
// the format is chosen from the file extension.
//
//	{
//	  "order": {
//	    "number": "PO-2025-0042",
//	    "created_at": "2025-07-30T09:00:00+07:00",
//	    "items": [
//	      {"name": "Besi beton 10mm", "quantity": 20, "unit": "batang",
//	       "unit_price": 85000, "total": 1700000}
//	    ],
//	    "subtotal": 1700000,
//	    "tax": 187000
//	  },
//	  "issuer": {"name": "PT Bangun Jaya", "signer": {"name": "Rina"}},
//	  "counterparty": {"name": "UD Sumber Baja"}
//	}
//
// Unknown keys are ignored. Missing text is printed as a placeholder and
// missing amounts are zero; see [document.Order.Normalized].
//
// # Round trips
//
// [WriteDocument] followed by [ReadDocument] in the same format returns an
// equal document, so exported files can be edited and re-rendered.
package io
