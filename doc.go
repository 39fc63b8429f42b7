/*
go-solo2coco converts synthetic datasets in the SOLO capture format into
COCO instance annotation documents.

Each frame of a SOLO sequence contributes one COCO image and one annotation
per 2D bounding box.  Segmentation polygons are traced from the frame's
semantic segmentation image, where every label is painted in a unique colour,
and attached to the bounding box annotations of the matching category.

See the convert and visualize programs in the example subdirectory.
*/
package solo2coco
